package journal

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteRecordAndGet(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)
	snap := testSnapshot()

	require.NoError(t, j.RecordRun(snap))

	back, err := j.GetRun(snap.RunID)
	require.NoError(t, err)

	assert.Equal(t, snap.RunID, back.RunID)
	assert.Equal(t, snap.Strategy, back.Strategy)
	assert.Equal(t, snap.Ticker, back.Ticker)
	assert.Equal(t, snap.InitialCash, back.InitialCash)
	assert.Equal(t, snap.Params, back.Params)

	require.Len(t, back.Trades, 2)
	closed, open := back.Trades[0], back.Trades[1]

	assert.False(t, closed.Open)
	assert.Equal(t, -1.0, float64(closed.Profit))
	assert.Equal(t, snap.Trades[0].ExitPrice, closed.ExitPrice)

	// The open trade stored NULL exit columns and comes back with NaN profit.
	assert.True(t, open.Open)
	assert.True(t, math.IsNaN(float64(open.Profit)))
	assert.Equal(t, "still running", open.Comment)

	require.Len(t, back.Cash, 2)
	assert.Equal(t, 999.0, back.Cash[1].Cash)

	// Sentinel metrics survive the JSON column.
	pf, ok := back.Metric("profit_factor")
	require.True(t, ok)
	assert.True(t, math.IsInf(float64(pf.Value), -1))
}

func TestSQLiteGetUnknownRun(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)
	_, err := j.GetRun("nope")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteListRuns(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)

	a := testSnapshot()
	b := testSnapshot()
	b.RunID = "01TESTRUN0000000000000001"
	b.Strategy = "breakout(20)"
	// trade_id is a primary key; the second run needs its own trade rows.
	b.Trades = nil

	require.NoError(t, j.RecordRun(a))
	require.NoError(t, j.RecordRun(b))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// ULIDs sort chronologically, so listing is insertion order here.
	assert.Equal(t, a.RunID, runs[0].RunID)
	assert.Equal(t, b.RunID, runs[1].RunID)
	assert.Equal(t, "breakout(20)", runs[1].Strategy)
}

func TestSQLiteDuplicateRunRejected(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)
	snap := testSnapshot()

	require.NoError(t, j.RecordRun(snap))
	assert.Error(t, j.RecordRun(snap), "run_id is the primary key")
}
