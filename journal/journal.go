// Package journal persists completed backtest runs. A run is stored as an
// explicit Snapshot bundle (id, params, metrics, trades, cash series) that
// can be reloaded to print or export a run without replaying it. Nothing in
// here touches a live engine; snapshots are plain data.
package journal

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/internal/id"
	"github.com/rustyeddy/futback/metrics"
)

// Float is a float64 that survives JSON round-trips even when it holds one
// of the sentinel values (NaN, ±Inf) the ratio metrics can take.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, +1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "+Inf":
			*f = Float(math.Inf(+1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("bad float sentinel %q", s)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// TradeRecord mirrors backtest.Trade in a flat, serializable shape.
type TradeRecord struct {
	TradeID    string    `json:"trade_id"`
	Side       string    `json:"side"`
	Size       float64   `json:"size"`
	EntryTime  time.Time `json:"entry_time"`
	EntryPrice float64   `json:"entry_price"`
	ExitTime   time.Time `json:"exit_time,omitempty"`
	ExitPrice  float64   `json:"exit_price,omitempty"`
	Profit     Float     `json:"profit"`
	Open       bool      `json:"open,omitempty"`
	Comment    string    `json:"comment,omitempty"`
}

// CashRecord is one point of the per-bar account balance series.
type CashRecord struct {
	Time time.Time `json:"time"`
	Cash float64   `json:"cash"`
}

// MetricRecord mirrors metrics.Metric with a sentinel-safe value.
type MetricRecord struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Value  Float  `json:"value"`
	Unit   string `json:"unit,omitempty"`
	Header bool   `json:"header,omitempty"`
}

// Snapshot is the persisted run artifact.
type Snapshot struct {
	RunID       string             `json:"run_id"`
	Created     time.Time          `json:"created"`
	Strategy    string             `json:"strategy"`
	Ticker      string             `json:"ticker"`
	Size        float64            `json:"size"`
	InitialCash float64            `json:"initial_cash"`
	Params      map[string]float64 `json:"params,omitempty"`
	Metrics     []MetricRecord     `json:"metrics"`
	Trades      []TradeRecord      `json:"trades"`
	Cash        []CashRecord       `json:"cash"`
}

// NewSnapshot freezes a completed engine plus its computed summary into a
// serializable bundle with a fresh run ID.
func NewSnapshot(e *backtest.Engine, params map[string]float64, sum metrics.Summary) Snapshot {
	snap := Snapshot{
		RunID:       id.New(),
		Created:     time.Now().UTC(),
		Strategy:    e.Strategy().Name(),
		Ticker:      e.Series().Contract.Ticker,
		Size:        e.Size(),
		InitialCash: e.InitialCash(),
		Params:      params,
	}

	for _, m := range sum.Rows() {
		snap.Metrics = append(snap.Metrics, MetricRecord{
			ID:     m.ID,
			Title:  m.Title,
			Value:  Float(m.Value),
			Unit:   m.Unit,
			Header: m.Header,
		})
	}

	for _, t := range e.Trades() {
		rec := TradeRecord{
			TradeID:    t.ID,
			Side:       t.Side.String(),
			Size:       t.Size,
			EntryTime:  t.Entry.Time,
			EntryPrice: t.Entry.Price,
			Profit:     Float(t.Profit()),
			Open:       t.Open(),
			Comment:    t.Entry.Comment,
		}
		if t.Exit != nil {
			rec.ExitTime = t.Exit.Time
			rec.ExitPrice = t.Exit.Price
		}
		snap.Trades = append(snap.Trades, rec)
	}

	for _, c := range e.CashSeries() {
		snap.Cash = append(snap.Cash, CashRecord{Time: c.Time, Cash: c.Cash})
	}

	return snap
}

func (m MetricRecord) toMetric() metrics.Metric {
	return metrics.Metric{
		ID:     m.ID,
		Title:  m.Title,
		Value:  float64(m.Value),
		Unit:   m.Unit,
		Header: m.Header,
	}
}

// Rows converts the stored metric records back to display rows.
func (s Snapshot) Rows() []metrics.Metric {
	rows := make([]metrics.Metric, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		rows = append(rows, m.toMetric())
	}
	return rows
}

// Metric returns the metric row with the given id, or false.
func (s Snapshot) Metric(metricID string) (MetricRecord, bool) {
	for _, m := range s.Metrics {
		if m.ID == metricID {
			return m, true
		}
	}
	return MetricRecord{}, false
}
