package sweep

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// GeneticConfig drives the evolutionary sweep. The defaults in Default are
// deliberately small; a personal toolkit optimizes dozens of parameters,
// not thousands.
type GeneticConfig struct {
	Population    int     `yaml:"population"`
	Generations   int     `yaml:"generations"`
	MutationRate  float64 `yaml:"mutation_rate"`
	CrossoverRate float64 `yaml:"crossover_rate"`
	Elite         int     `yaml:"elite"`
	Seed          int64   `yaml:"seed"`
	Bounds        []Range `yaml:"bounds"`
}

func (c *GeneticConfig) setDefaults() {
	if c.Population <= 0 {
		c.Population = 20
	}
	if c.Generations <= 0 {
		c.Generations = 10
	}
	if c.MutationRate <= 0 {
		c.MutationRate = 0.10
	}
	if c.CrossoverRate <= 0 {
		c.CrossoverRate = 0.70
	}
	if c.Elite <= 0 {
		c.Elite = 2
	}
}

// Evolve runs a generational genetic search over the parameter bounds.
// Given the same seed, series, and bounds it is fully deterministic: the
// RNG is private and each generation is a complete fork-join wave through
// the runner.
func Evolve(ctx context.Context, r *Runner, fit Fitness, cfg GeneticConfig) (Outcome, error) {
	cfg.setDefaults()
	if len(cfg.Bounds) == 0 {
		return Outcome{}, fmt.Errorf("evolve: no parameter bounds")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	pop := make([]Params, cfg.Population)
	for i := range pop {
		pop[i] = randomParams(rng, cfg.Bounds)
	}

	var best Outcome
	bestScore := math.Inf(-1)
	haveBest := false

	for gen := 0; gen < cfg.Generations; gen++ {
		tasks := Tasks(fmt.Sprintf("gen%02d", gen), pop)
		outcomes := r.Run(ctx, tasks)

		// Rank the wave, failures and NaN scores last.
		ranked := make([]Outcome, len(outcomes))
		copy(ranked, outcomes)
		sort.SliceStable(ranked, func(a, b int) bool {
			return scoreOf(ranked[a], fit) > scoreOf(ranked[b], fit)
		})

		if s := scoreOf(ranked[0], fit); !haveBest || s > bestScore {
			best = ranked[0]
			bestScore = s
			haveBest = true
		}

		if gen == cfg.Generations-1 {
			break
		}

		next := make([]Params, 0, cfg.Population)
		for i := 0; i < cfg.Elite && i < len(ranked); i++ {
			next = append(next, ranked[i].Task.Params.Clone())
		}
		for len(next) < cfg.Population {
			a := tournament(rng, ranked, fit)
			b := tournament(rng, ranked, fit)
			child := crossover(rng, a, b, cfg.CrossoverRate)
			mutate(rng, child, cfg.Bounds, cfg.MutationRate)
			next = append(next, child)
		}
		pop = next
	}

	if !haveBest || best.Err != nil {
		return Outcome{}, fmt.Errorf("evolve: no viable parameter set found")
	}
	return best, nil
}

func scoreOf(o Outcome, fit Fitness) float64 {
	if o.Err != nil {
		return math.Inf(-1)
	}
	s := fit.Score(o.Summary)
	if math.IsNaN(s) {
		return math.Inf(-1)
	}
	return s
}

func randomParams(rng *rand.Rand, bounds []Range) Params {
	p := make(Params, len(bounds))
	for _, b := range bounds {
		p[b.Name] = randomGene(rng, b)
	}
	return p
}

// randomGene draws a value in [Min, Max], snapped to the range's step so
// integer-valued parameters stay integers.
func randomGene(rng *rand.Rand, b Range) float64 {
	v := b.Min + rng.Float64()*(b.Max-b.Min)
	if b.Step > 0 {
		v = b.Min + math.Round((v-b.Min)/b.Step)*b.Step
	}
	if v > b.Max {
		v = b.Max
	}
	return v
}

// tournament picks the better of two random candidates (size-2 tournament,
// mild selection pressure).
func tournament(rng *rand.Rand, ranked []Outcome, fit Fitness) Params {
	a := ranked[rng.Intn(len(ranked))]
	b := ranked[rng.Intn(len(ranked))]
	if scoreOf(b, fit) > scoreOf(a, fit) {
		a = b
	}
	return a.Task.Params
}

// crossover mixes two parents gene-by-gene (uniform crossover); with
// probability 1-rate the child is just a copy of the first parent.
func crossover(rng *rand.Rand, a, b Params, rate float64) Params {
	child := a.Clone()
	if rng.Float64() >= rate {
		return child
	}
	for k := range child {
		if rng.Float64() < 0.5 {
			if v, ok := b[k]; ok {
				child[k] = v
			}
		}
	}
	return child
}

func mutate(rng *rand.Rand, p Params, bounds []Range, rate float64) {
	for _, b := range bounds {
		if rng.Float64() < rate {
			p[b.Name] = randomGene(rng, b)
		}
	}
}
