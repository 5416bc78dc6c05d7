package journal

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		json string
	}{
		{"normal", 42.5, "42.5"},
		{"zero", 0, "0"},
		{"negative", -1.25, "-1.25"},
		{"not a number", math.NaN(), `"NaN"`},
		{"positive infinity", math.Inf(+1), `"+Inf"`},
		{"negative infinity", math.Inf(-1), `"-Inf"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(Float(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(data))

			var back Float
			require.NoError(t, json.Unmarshal(data, &back))
			if math.IsNaN(tt.in) {
				assert.True(t, math.IsNaN(float64(back)))
			} else {
				assert.Equal(t, tt.in, float64(back))
			}
		})
	}
}

func TestFloatRejectsUnknownSentinel(t *testing.T) {
	t.Parallel()

	var f Float
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &f))
}

func testSnapshot() Snapshot {
	created := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	entry := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	exit := entry.Add(72 * time.Hour)

	return Snapshot{
		RunID:       "01TESTRUN0000000000000000",
		Created:     created,
		Strategy:    "sma-cross(10,30)",
		Ticker:      "ES",
		Size:        1,
		InitialCash: 1000,
		Params:      map[string]float64{"fast": 10, "slow": 30},
		Metrics: []MetricRecord{
			{ID: "account", Title: "Account", Header: true},
			{ID: "profit", Title: "Profit", Value: Float(-1), Unit: "$"},
			{ID: "profit_factor", Title: "Profit Factor", Value: Float(math.Inf(-1))},
			{ID: "annualized_return", Title: "Annualized Return", Value: Float(math.NaN()), Unit: "%"},
		},
		Trades: []TradeRecord{
			{
				TradeID:    "01TESTTRADE00000000000001",
				Side:       "long",
				Size:       1,
				EntryTime:  entry,
				EntryPrice: 100,
				ExitTime:   exit,
				ExitPrice:  99,
				Profit:     Float(-1),
			},
			{
				TradeID:    "01TESTTRADE00000000000002",
				Side:       "short",
				Size:       1,
				EntryTime:  exit.Add(24 * time.Hour),
				EntryPrice: 105,
				Profit:     Float(math.NaN()),
				Open:       true,
				Comment:    "still running",
			},
		},
		Cash: []CashRecord{
			{Time: entry, Cash: 1000},
			{Time: exit, Cash: 999},
		},
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	path := filepath.Join(t.TempDir(), snap.RunID+".json")

	require.NoError(t, SaveSnapshot(path, snap))

	back, err := LoadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, snap.RunID, back.RunID)
	assert.Equal(t, snap.Strategy, back.Strategy)
	assert.Equal(t, snap.Params, back.Params)
	require.Len(t, back.Trades, 2)
	require.Len(t, back.Cash, 2)

	// Sentinel metric values survive the round trip exactly.
	pf, ok := back.Metric("profit_factor")
	require.True(t, ok)
	assert.True(t, math.IsInf(float64(pf.Value), -1))

	ar, ok := back.Metric("annualized_return")
	require.True(t, ok)
	assert.True(t, math.IsNaN(float64(ar.Value)))

	assert.True(t, back.Trades[1].Open)
	assert.True(t, math.IsNaN(float64(back.Trades[1].Profit)))
	assert.Equal(t, snap.Trades[0].Profit, back.Trades[0].Profit)
}

func TestWriteOrg(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	path := filepath.Join(t.TempDir(), "run.org")

	require.NoError(t, snap.WriteOrg(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "* RUN: sma-cross(10,30) ES")
	assert.Contains(t, report, ":RUN_ID:      "+snap.RunID)
	assert.Contains(t, report, "| fast | 10 |")
	assert.Contains(t, report, "| Profit | $-1.00 |")
	// Open trades render placeholders, not NaN numbers.
	assert.Contains(t, report, "(open)")
	assert.Contains(t, report, "n/a")
}

func TestSnapshotRows(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	rows := snap.Rows()
	require.Len(t, rows, len(snap.Metrics))
	assert.True(t, rows[0].Header)
	assert.Equal(t, "profit", rows[1].ID)
	assert.Equal(t, -1.0, rows[1].Value)

	_, ok := snap.Metric("nonexistent")
	assert.False(t, ok)
}
