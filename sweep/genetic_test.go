package sweep

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geneticTestRunner(t *testing.T) *Runner {
	t.Helper()

	return &Runner{
		Series:  testSeries(t, 100, 101, 103, 99, 104, 107, 102, 108, 105, 110),
		Size:    1,
		Factory: holdFactory,
		Workers: 2,
	}
}

func TestEvolveDeterministicForSeed(t *testing.T) {
	t.Parallel()

	fit, err := FitnessByName("profit")
	require.NoError(t, err)

	cfg := GeneticConfig{
		Population:  8,
		Generations: 4,
		Seed:        42,
		Bounds:      []Range{{Name: "hold", Min: 1, Max: 8, Step: 1}},
	}

	run := func() Outcome {
		best, err := Evolve(context.Background(), geneticTestRunner(t), fit, cfg)
		require.NoError(t, err)
		return best
	}

	a, b := run(), run()
	assert.Equal(t, a.Task.Params, b.Task.Params)
	assert.Equal(t, a.Summary.Profit, b.Summary.Profit)
}

func TestEvolveFindsKnownOptimum(t *testing.T) {
	t.Parallel()

	// Exits land on bar closes, so every achievable profit is the delta from
	// the entry close 100; the best hold in [1,8] exits at close 108 (+8).
	fit, err := FitnessByName("profit")
	require.NoError(t, err)

	cfg := GeneticConfig{
		Population:  10,
		Generations: 6,
		Seed:        7,
		Bounds:      []Range{{Name: "hold", Min: 1, Max: 8, Step: 1}},
	}

	best, err := Evolve(context.Background(), geneticTestRunner(t), fit, cfg)
	require.NoError(t, err)
	assert.Greater(t, best.Summary.Profit, 0.0)
	assert.LessOrEqual(t, best.Summary.Profit, 8.0)
	assert.GreaterOrEqual(t, best.Task.Params["hold"], 1.0)
	assert.LessOrEqual(t, best.Task.Params["hold"], 8.0)
}

func TestEvolveRequiresBounds(t *testing.T) {
	t.Parallel()

	fit, err := FitnessByName("profit")
	require.NoError(t, err)

	_, err = Evolve(context.Background(), geneticTestRunner(t), fit, GeneticConfig{Seed: 1})
	assert.ErrorContains(t, err, "no parameter bounds")
}

func TestRandomGeneRespectsBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	b := Range{Name: "x", Min: 2, Max: 10, Step: 2}

	for i := 0; i < 200; i++ {
		v := randomGene(rng, b)
		assert.GreaterOrEqual(t, v, b.Min)
		assert.LessOrEqual(t, v, b.Max)
		// Step snapping keeps integer-valued parameters integral.
		assert.Equal(t, 0.0, float64(int(v)%2))
	}
}

func TestCrossoverAndMutate(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	a := Params{"x": 1, "y": 1}
	b := Params{"x": 2, "y": 2}

	child := crossover(rng, a, b, 1.0)
	for k, v := range child {
		assert.Contains(t, []float64{a[k], b[k]}, v, "gene %s", k)
	}
	// Parents are never mutated by crossover.
	assert.Equal(t, Params{"x": 1, "y": 1}, a)

	bounds := []Range{{Name: "x", Min: 0, Max: 100, Step: 1}}
	mutate(rng, child, bounds, 1.0)
	assert.GreaterOrEqual(t, child["x"], 0.0)
	assert.LessOrEqual(t, child["x"], 100.0)
}
