package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkForwardFoldsTile(t *testing.T) {
	t.Parallel()

	// 10 bars, in=4, out=2: folds start at 0, 2, 4 -> three folds, test
	// windows [4,6) [6,8) [8,10) tile the tail without overlap.
	r := &Runner{
		Series:  testSeries(t, 100, 101, 103, 99, 104, 107, 102, 108, 105, 110),
		Size:    1,
		Factory: holdFactory,
		Workers: 2,
	}
	fit, err := FitnessByName("profit")
	require.NoError(t, err)

	cfg := WalkForwardConfig{
		InSample:  4,
		OutSample: 2,
		Grid:      []Range{{Name: "hold", Min: 1, Max: 2, Step: 1}},
	}

	res, err := WalkForward(context.Background(), r, fit, cfg)
	require.NoError(t, err)
	require.Len(t, res.Folds, 3)

	for i, f := range res.Folds {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, i*2, f.TrainStart)
		assert.Equal(t, i*2+4, f.TrainEnd)
		assert.Equal(t, f.TrainEnd, f.TestStart)
		assert.Equal(t, f.TestStart+2, f.TestEnd)

		// The winning parameters come from the swept grid.
		hold := f.Params["hold"]
		assert.GreaterOrEqual(t, hold, 1.0)
		assert.LessOrEqual(t, hold, 2.0)
	}

	// Aggregates are sums over the fold out-of-sample summaries.
	var profit float64
	var trades int
	for _, f := range res.Folds {
		profit += f.OutSample.Profit
		trades += f.OutSample.Trades
	}
	assert.Equal(t, profit, res.OOSProfit)
	assert.Equal(t, trades, res.OOSTrades)
}

func TestWalkForwardValidation(t *testing.T) {
	t.Parallel()

	r := &Runner{
		Series:  testSeries(t, 100, 101, 102),
		Size:    1,
		Factory: holdFactory,
	}
	fit, err := FitnessByName("profit")
	require.NoError(t, err)

	grid := []Range{{Name: "hold", Min: 1, Max: 2, Step: 1}}

	t.Run("non-positive windows", func(t *testing.T) {
		t.Parallel()
		_, err := WalkForward(context.Background(), r, fit,
			WalkForwardConfig{InSample: 0, OutSample: 2, Grid: grid})
		assert.Error(t, err)
	})

	t.Run("missing grid", func(t *testing.T) {
		t.Parallel()
		_, err := WalkForward(context.Background(), r, fit,
			WalkForwardConfig{InSample: 2, OutSample: 1})
		assert.Error(t, err)
	})

	t.Run("series too short", func(t *testing.T) {
		t.Parallel()
		_, err := WalkForward(context.Background(), r, fit,
			WalkForwardConfig{InSample: 10, OutSample: 5, Grid: grid})
		assert.ErrorContains(t, err, "need at least")
	})
}
