package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyeddy/futback/sweep"
	"github.com/spf13/cobra"
)

var walkforwardCmd = &cobra.Command{
	Use:     "walkforward",
	Aliases: []string{"wf"},
	Short:   "Walk-forward validation of a parameter grid",
	Long: `Walkforward rolls a fitting window across the series. Each fold
optimizes the grid in-sample, then replays the winning parameters once
on the held-out bars that follow. Only the out-of-sample aggregate is a
fair judgement of the grid.

Example:
  futback walkforward --bars data/es-1m.csv --strategy sma-cross \
      --grid fast:5:20:5 --grid slow:20:60:10 \
      --in-sample 2000 --out-sample 500`,
	RunE: runWalkforward,
}

var (
	wfBarsPath  string
	wfTicker    string
	wfFrom      string
	wfTo        string
	wfStrategy  string
	wfSize      float64
	wfGrid      []string
	wfFitness   string
	wfWorkers   int
	wfInSample  int
	wfOutSample int
)

func init() {
	rootCmd.AddCommand(walkforwardCmd)

	walkforwardCmd.Flags().StringVarP(&wfBarsPath, "bars", "b", "", "path to bar CSV (required)")
	walkforwardCmd.Flags().StringVarP(&wfTicker, "ticker", "t", "ES", "contract ticker")
	walkforwardCmd.Flags().StringVar(&wfFrom, "from", "", "start of replay window")
	walkforwardCmd.Flags().StringVar(&wfTo, "to", "", "end of replay window, exclusive")
	walkforwardCmd.Flags().StringVarP(&wfStrategy, "strategy", "s", "sma-cross", "strategy name")
	walkforwardCmd.Flags().Float64VarP(&wfSize, "size", "n", 1, "contracts per position")
	walkforwardCmd.Flags().StringArrayVarP(&wfGrid, "grid", "g", nil, "swept range name:min:max:step (repeatable, required)")
	walkforwardCmd.Flags().StringVarP(&wfFitness, "fitness", "f", "profit", "fitness metric")
	walkforwardCmd.Flags().IntVarP(&wfWorkers, "workers", "w", 0, "worker pool size (0 = NumCPU)")
	walkforwardCmd.Flags().IntVar(&wfInSample, "in-sample", 0, "bars per fitting window (required)")
	walkforwardCmd.Flags().IntVar(&wfOutSample, "out-sample", 0, "bars per held-out window (required)")

	walkforwardCmd.MarkFlagRequired("bars")
	walkforwardCmd.MarkFlagRequired("grid")
	walkforwardCmd.MarkFlagRequired("in-sample")
	walkforwardCmd.MarkFlagRequired("out-sample")
}

func runWalkforward(cmd *cobra.Command, args []string) error {
	series, err := loadSeries(wfBarsPath, wfTicker, wfFrom, wfTo)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	grid, err := parseRanges(wfGrid)
	if err != nil {
		return err
	}

	fit, err := sweep.FitnessByName(wfFitness)
	if err != nil {
		return err
	}

	runner := &sweep.Runner{
		Series:  series,
		Size:    wfSize,
		Factory: strategyFactory(wfStrategy),
		Workers: wfWorkers,
	}

	cfg := sweep.WalkForwardConfig{
		InSample:  wfInSample,
		OutSample: wfOutSample,
		Grid:      grid,
	}

	fmt.Printf("Walk-forward %s: in=%d out=%d bars, fitness=%s\n\n",
		wfStrategy, cfg.InSample, cfg.OutSample, fit.Name)

	res, err := sweep.WalkForward(context.Background(), runner, fit, cfg)
	if err != nil {
		return err
	}

	w := os.Stdout
	fmt.Fprintf(w, "%-5s %-11s %-11s %-8s  params\n", "fold", "is-profit", "oos-profit", "trades")
	for _, f := range res.Folds {
		fmt.Fprintf(w, "%-5d %-11.2f %-11.2f %-8d  %v\n",
			f.Index, f.InSample.Profit, f.OutSample.Profit, f.OutSample.Trades, f.Params)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Out-of-sample aggregate over %d folds\n", len(res.Folds))
	fmt.Fprintf(w, "  Profit: %.2f\n", res.OOSProfit)
	fmt.Fprintf(w, "  Trades: %d (wins %d, losses %d)\n", res.OOSTrades, res.OOSWins, res.OOSLosses)
	return nil
}
