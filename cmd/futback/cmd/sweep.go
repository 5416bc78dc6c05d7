package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/metrics"
	"github.com/rustyeddy/futback/strategies"
	"github.com/rustyeddy/futback/sweep"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Grid-sweep strategy parameters and pick the best by fitness",
	Long: `Sweep expands the parameter grid, runs an independent backtest per
parameter set on a worker pool, and reports the best performer.

Example:
  futback sweep --bars data/es-1m.csv --ticker ES --strategy sma-cross \
      --grid fast:5:20:5 --grid slow:20:60:10 --fitness profit`,
	RunE: runSweep,
}

var (
	swBarsPath string
	swTicker   string
	swFrom     string
	swTo       string
	swStrategy string
	swSize     float64
	swGrid     []string
	swFitness  string
	swWorkers  int
	swTop      int
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&swBarsPath, "bars", "b", "", "path to bar CSV (required)")
	sweepCmd.Flags().StringVarP(&swTicker, "ticker", "t", "ES", "contract ticker")
	sweepCmd.Flags().StringVar(&swFrom, "from", "", "start of replay window")
	sweepCmd.Flags().StringVar(&swTo, "to", "", "end of replay window, exclusive")
	sweepCmd.Flags().StringVarP(&swStrategy, "strategy", "s", "sma-cross", "strategy name")
	sweepCmd.Flags().Float64VarP(&swSize, "size", "n", 1, "contracts per position")
	sweepCmd.Flags().StringArrayVarP(&swGrid, "grid", "g", nil, "swept range name:min:max:step (repeatable, required)")
	sweepCmd.Flags().StringVarP(&swFitness, "fitness", "f", "profit", "fitness metric")
	sweepCmd.Flags().IntVarP(&swWorkers, "workers", "w", 0, "worker pool size (0 = NumCPU)")
	sweepCmd.Flags().IntVar(&swTop, "top", 5, "how many ranked results to print")

	sweepCmd.MarkFlagRequired("bars")
	sweepCmd.MarkFlagRequired("grid")
}

func runSweep(cmd *cobra.Command, args []string) error {
	series, err := loadSeries(swBarsPath, swTicker, swFrom, swTo)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	ranges, err := parseRanges(swGrid)
	if err != nil {
		return err
	}

	fit, err := sweep.FitnessByName(swFitness)
	if err != nil {
		return err
	}

	runner := &sweep.Runner{
		Series:  series,
		Size:    swSize,
		Factory: strategyFactory(swStrategy),
		Workers: swWorkers,
	}

	tasks := sweep.Tasks("grid", sweep.Expand(ranges))
	fmt.Printf("Sweeping %d parameter sets (%s, fitness=%s)\n\n", len(tasks), swStrategy, fit.Name)

	outcomes := runner.Run(context.Background(), tasks)

	best, err := sweep.Best(outcomes, fit)
	if err != nil {
		return err
	}

	printRanked(outcomes, fit, swTop)

	fmt.Printf("\nBest: %s %v\n", best.Task.ID, best.Task.Params)
	metrics.Print(os.Stdout, "Best Parameter Set", best.Summary)
	return nil
}

// strategyFactory adapts the registry to the sweep layer; each task builds
// its own strategy instance.
func strategyFactory(name string) sweep.Factory {
	return func(p sweep.Params) (backtest.Strategy, error) {
		return strategies.ByName(name, p)
	}
}

func printRanked(outcomes []sweep.Outcome, fit sweep.Fitness, top int) {
	type row struct {
		o     sweep.Outcome
		score float64
	}
	rows := make([]row, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, "failed: %v\n", o.Err)
			continue
		}
		rows = append(rows, row{o, fit.Score(o.Summary)})
	}

	for i := 0; i < len(rows)-1; i++ {
		for k := i + 1; k < len(rows); k++ {
			if rows[k].score > rows[i].score {
				rows[i], rows[k] = rows[k], rows[i]
			}
		}
	}
	if top > len(rows) {
		top = len(rows)
	}

	fmt.Printf("%-12s %-10s %-10s %-8s  params\n", "task", fit.Name, "profit", "trades")
	for _, r := range rows[:top] {
		fmt.Printf("%-12s %-10.2f %-10.2f %-8d  %v\n",
			r.o.Task.ID, r.score, r.o.Summary.Profit, r.o.Summary.Trades, r.o.Task.Params)
	}
}
