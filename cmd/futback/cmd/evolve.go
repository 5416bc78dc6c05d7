package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyeddy/futback/metrics"
	"github.com/rustyeddy/futback/sweep"
	"github.com/spf13/cobra"
)

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Genetic parameter search over bounded ranges",
	Long: `Evolve runs a generational genetic search: random parameter sets
within the given bounds, tournament selection, uniform crossover, and
bounded mutation. Each generation is one fork-join wave through the
worker pool. The same seed always reproduces the same search.

Example:
  futback evolve --bars data/es-1m.csv --strategy breakout \
      --bound period:10:60:5 --bound cooldown:0:10:1 --seed 42`,
	RunE: runEvolve,
}

var (
	evBarsPath    string
	evTicker      string
	evFrom        string
	evTo          string
	evStrategy    string
	evSize        float64
	evBounds      []string
	evFitness     string
	evWorkers     int
	evPopulation  int
	evGenerations int
	evMutation    float64
	evCrossover   float64
	evElite       int
	evSeed        int64
)

func init() {
	rootCmd.AddCommand(evolveCmd)

	evolveCmd.Flags().StringVarP(&evBarsPath, "bars", "b", "", "path to bar CSV (required)")
	evolveCmd.Flags().StringVarP(&evTicker, "ticker", "t", "ES", "contract ticker")
	evolveCmd.Flags().StringVar(&evFrom, "from", "", "start of replay window")
	evolveCmd.Flags().StringVar(&evTo, "to", "", "end of replay window, exclusive")
	evolveCmd.Flags().StringVarP(&evStrategy, "strategy", "s", "sma-cross", "strategy name")
	evolveCmd.Flags().Float64VarP(&evSize, "size", "n", 1, "contracts per position")
	evolveCmd.Flags().StringArrayVar(&evBounds, "bound", nil, "parameter bound name:min:max:step (repeatable, required)")
	evolveCmd.Flags().StringVarP(&evFitness, "fitness", "f", "profit", "fitness metric")
	evolveCmd.Flags().IntVarP(&evWorkers, "workers", "w", 0, "worker pool size (0 = NumCPU)")
	evolveCmd.Flags().IntVar(&evPopulation, "population", 20, "population size")
	evolveCmd.Flags().IntVar(&evGenerations, "generations", 10, "generations")
	evolveCmd.Flags().Float64Var(&evMutation, "mutation", 0.10, "per-gene mutation rate")
	evolveCmd.Flags().Float64Var(&evCrossover, "crossover", 0.70, "crossover rate")
	evolveCmd.Flags().IntVar(&evElite, "elite", 2, "elites carried over unchanged")
	evolveCmd.Flags().Int64Var(&evSeed, "seed", 1, "RNG seed (same seed, same search)")

	evolveCmd.MarkFlagRequired("bars")
	evolveCmd.MarkFlagRequired("bound")
}

func runEvolve(cmd *cobra.Command, args []string) error {
	series, err := loadSeries(evBarsPath, evTicker, evFrom, evTo)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	bounds, err := parseRanges(evBounds)
	if err != nil {
		return err
	}

	fit, err := sweep.FitnessByName(evFitness)
	if err != nil {
		return err
	}

	runner := &sweep.Runner{
		Series:  series,
		Size:    evSize,
		Factory: strategyFactory(evStrategy),
		Workers: evWorkers,
	}

	cfg := sweep.GeneticConfig{
		Population:    evPopulation,
		Generations:   evGenerations,
		MutationRate:  evMutation,
		CrossoverRate: evCrossover,
		Elite:         evElite,
		Seed:          evSeed,
		Bounds:        bounds,
	}

	fmt.Printf("Evolving %s: population=%d generations=%d fitness=%s seed=%d\n\n",
		evStrategy, cfg.Population, cfg.Generations, fit.Name, cfg.Seed)

	best, err := sweep.Evolve(context.Background(), runner, fit, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Best: %s %v\n", best.Task.ID, best.Task.Params)
	metrics.Print(os.Stdout, "Best Evolved Parameter Set", best.Summary)
	return nil
}
