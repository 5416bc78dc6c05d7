package sweep

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpec = market.ContractSpec{
	Ticker:     "TST",
	Name:       "Test Contract",
	TickSize:   1,
	TickValue:  1,
	PointValue: 1,
	MarginRate: 10,
}

func testSeries(t *testing.T, closes ...float64) *market.Series {
	t.Helper()

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Time:  base.Add(time.Duration(i) * 24 * time.Hour),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return &market.Series{Contract: testSpec, Bars: bars, Source: "test"}
}

// holdBars goes long at bar "entry" and flattens "hold" bars later. Its
// profit depends directly on the parameters, which gives the fitness
// something real to rank.
type holdBars struct {
	entry int
	hold  int
}

func (s *holdBars) Name() string { return "hold-bars" }
func (s *holdBars) Reset()       {}

func (s *holdBars) OnBar(ctx *backtest.Context) error {
	switch {
	case ctx.Index() == s.entry:
		ctx.Buy(1, "enter")
	case !ctx.IsFlat() && (ctx.Index() == s.entry+s.hold || ctx.IsLastBar()):
		ctx.Flat("exit")
	}
	return nil
}

func holdFactory(p Params) (backtest.Strategy, error) {
	hold := int(p["hold"])
	if hold <= 0 {
		return nil, fmt.Errorf("hold must be positive, got %d", hold)
	}
	return &holdBars{entry: 0, hold: hold}, nil
}

func TestRunnerOutcomesInTaskOrder(t *testing.T) {
	t.Parallel()

	r := &Runner{
		Series:  testSeries(t, 100, 101, 103, 99, 104, 107),
		Size:    1,
		Factory: holdFactory,
		Workers: 3,
	}

	tasks := Tasks("t", []Params{
		{"hold": 1}, {"hold": 2}, {"hold": 3}, {"hold": 4},
	})
	outcomes := r.Run(context.Background(), tasks)

	require.Len(t, outcomes, len(tasks))
	for i, o := range outcomes {
		require.NoError(t, o.Err)
		assert.Equal(t, tasks[i].ID, o.Task.ID, "outcome %d out of order", i)
	}

	// hold=1 exits at close 101 (+1); hold=3 exits at close 99 (-1).
	assert.InDelta(t, +1.0, outcomes[0].Summary.Profit, 1e-12)
	assert.InDelta(t, -1.0, outcomes[2].Summary.Profit, 1e-12)
}

func TestRunnerDeterministicAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	tasks := Tasks("t", Expand([]Range{{Name: "hold", Min: 1, Max: 4, Step: 1}}))
	series := testSeries(t, 100, 101, 103, 99, 104, 107)

	run := func(workers int) []Outcome {
		r := &Runner{Series: series, Size: 1, Factory: holdFactory, Workers: workers}
		return r.Run(context.Background(), tasks)
	}

	serial := run(1)
	parallel := run(4)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Summary.Profit, parallel[i].Summary.Profit)
		assert.Equal(t, serial[i].Summary.Trades, parallel[i].Summary.Trades)
	}
}

func TestRunnerFactoryErrorIsolated(t *testing.T) {
	t.Parallel()

	r := &Runner{
		Series:  testSeries(t, 100, 101, 102),
		Size:    1,
		Factory: holdFactory,
		Workers: 2,
	}

	tasks := Tasks("t", []Params{{"hold": 1}, {"hold": -1}, {"hold": 2}})
	outcomes := r.Run(context.Background(), tasks)

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.NoError(t, outcomes[2].Err)
}
