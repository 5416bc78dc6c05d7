package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/futback/internal/id"
	"github.com/rustyeddy/futback/market"
)

var (
	// ErrAlreadyRun is returned when Run is called twice; the engine is a
	// one-shot replay and its state is not reusable.
	ErrAlreadyRun = errors.New("backtest: engine already run")

	// ErrMultipleOrders is returned when a strategy submits more than one
	// order during a single bar.
	ErrMultipleOrders = errors.New("backtest: multiple orders in one bar")

	// ErrPositionOpen is returned when an entry order arrives while a
	// position is already open. The position must pass through flat.
	ErrPositionOpen = errors.New("backtest: entry order while a position is open")

	// ErrNotFlat is returned when a flat order arrives with nothing to close.
	ErrNotFlat = errors.New("backtest: flat order with no open position")
)

// CashPoint is one entry of the running account balance, one per bar.
type CashPoint struct {
	Time time.Time `json:"time"`
	Cash float64   `json:"cash"`
}

// Engine replays a bar series through a strategy, fills orders at bar
// close, and tracks a single running position plus its realized P/L.
// Strictly single-threaded; construct one engine per run.
type Engine struct {
	series *market.Series
	strat  Strategy
	size   float64

	initialCash float64
	cash        float64

	idx int
	ran bool

	orders     []Order
	trades     []*Trade
	cashSeries []CashPoint
}

// NewEngine sizes the account from the contract's margin rate and the first
// bar's close, rounded to the nearest thousand. That convention replaces a
// user-chosen starting balance.
func NewEngine(series *market.Series, strat Strategy, size float64) *Engine {
	initial := roundThousand(series.Contract.MarginRate * series.First().Close * size)
	return &Engine{
		series:      series,
		strat:       strat,
		size:        size,
		initialCash: initial,
		cash:        initial,
		idx:         -1,
	}
}

func (e *Engine) Series() *market.Series  { return e.series }
func (e *Engine) Strategy() Strategy      { return e.strat }
func (e *Engine) Size() float64           { return e.size }
func (e *Engine) InitialCash() float64    { return e.initialCash }
func (e *Engine) Cash() float64           { return e.cash }
func (e *Engine) Orders() []Order         { return e.orders }
func (e *Engine) Trades() []*Trade        { return e.trades }
func (e *Engine) CashSeries() []CashPoint { return e.cashSeries }

// Run replays the full bar sequence in chronological order. For each bar it
// invokes the strategy, fills the bar's order (if any) at the bar close,
// and appends the running balance to the cash series. There is no early
// termination and no checkpointing; ctx is only checked between bars.
func (e *Engine) Run(ctx context.Context) error {
	if e.ran {
		return ErrAlreadyRun
	}
	e.ran = true

	if err := e.series.Validate(); err != nil {
		return err
	}

	e.strat.Reset()

	bctx := &Context{e: e}

	for i := range e.series.Bars {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.idx = i

		before := len(e.orders)
		if err := e.strat.OnBar(bctx); err != nil {
			return fmt.Errorf("strategy %s bar %d: %w", e.strat.Name(), i, err)
		}

		switch len(e.orders) - before {
		case 0:
			// no decision this bar
		case 1:
			if err := e.fillOrder(&e.orders[len(e.orders)-1]); err != nil {
				return fmt.Errorf("bar %d: %w", i, err)
			}
		default:
			return fmt.Errorf("bar %d: %w", i, ErrMultipleOrders)
		}

		e.cashSeries = append(e.cashSeries, CashPoint{
			Time: e.series.Bars[i].Time,
			Cash: e.cash,
		})
	}

	return nil
}

// fillOrder applies one order against the ledger. A flat order closes the
// open trade and realizes its profit into cash; a long/short order opens a
// new trade. Entry while positioned and flat while flat are rejected so a
// broken strategy cannot silently corrupt the ledger.
func (e *Engine) fillOrder(o *Order) error {
	if o.Sentiment == Flat {
		t := e.openTrade()
		if t == nil {
			return ErrNotFlat
		}
		profit := t.close(o, e.series.Contract)
		e.cash += profit
		return nil
	}

	if e.openTrade() != nil {
		return ErrPositionOpen
	}

	side := SideLong
	if o.Sentiment == Short {
		side = SideShort
	}
	e.trades = append(e.trades, &Trade{
		ID:    id.New(),
		Side:  side,
		Size:  math.Abs(o.Size),
		Entry: o,
	})
	return nil
}

// submit logs an order at the current bar's close. Fills never happen at
// the open or at a negotiated price; close-of-bar is the one fill policy.
func (e *Engine) submit(sent Sentiment, size float64, comment string) {
	bar := e.bar()
	e.orders = append(e.orders, Order{
		Ticker:    e.series.Contract.Ticker,
		Sentiment: sent,
		Size:      size,
		Time:      bar.Time,
		BarIndex:  e.idx,
		Price:     bar.Close,
		Comment:   comment,
	})
}

func (e *Engine) bar() market.Bar {
	return e.series.Bars[e.idx]
}

// openTrade returns the single open trade, or nil when flat. At most one
// trade is ever open; only the most recent can be.
func (e *Engine) openTrade() *Trade {
	if len(e.trades) == 0 {
		return nil
	}
	last := e.trades[len(e.trades)-1]
	if last.Open() {
		return last
	}
	return nil
}

func roundThousand(x float64) float64 {
	return math.Round(x/1000.0) * 1000.0
}
