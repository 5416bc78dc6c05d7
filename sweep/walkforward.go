package sweep

import (
	"context"
	"fmt"

	"github.com/rustyeddy/futback/metrics"
)

// WalkForwardConfig describes the rolling in-sample/out-of-sample windows.
// The window steps forward by OutSample bars, so test windows tile the
// series without overlap.
type WalkForwardConfig struct {
	InSample  int     `yaml:"in_sample"`  // bars in the fitting window
	OutSample int     `yaml:"out_sample"` // bars in the held-out window
	Grid      []Range `yaml:"grid"`
}

// Fold is one optimize-then-evaluate step.
type Fold struct {
	Index int

	TrainStart int
	TrainEnd   int // exclusive
	TestStart  int
	TestEnd    int // exclusive

	Params    Params
	InSample  metrics.Summary
	OutSample metrics.Summary
}

// WalkForwardResult aggregates the held-out performance across folds. Only
// out-of-sample numbers matter for judging a parameter grid; the in-sample
// summaries are kept for inspection.
type WalkForwardResult struct {
	Folds []Fold

	OOSProfit float64
	OOSTrades int
	OOSWins   int
	OOSLosses int
}

// WalkForward rolls the in-sample window across the series: each fold
// optimizes the grid on the fitting window by fitness, then replays the
// winning parameters once on the held-out window that follows.
func WalkForward(ctx context.Context, r *Runner, fit Fitness, cfg WalkForwardConfig) (WalkForwardResult, error) {
	if cfg.InSample <= 0 || cfg.OutSample <= 0 {
		return WalkForwardResult{}, fmt.Errorf("walkforward: in_sample and out_sample must be positive")
	}
	if len(cfg.Grid) == 0 {
		return WalkForwardResult{}, fmt.Errorf("walkforward: no parameter grid")
	}

	n := r.Series.Len()
	if n < cfg.InSample+cfg.OutSample {
		return WalkForwardResult{}, fmt.Errorf("walkforward: need at least %d bars, have %d",
			cfg.InSample+cfg.OutSample, n)
	}

	sets := Expand(cfg.Grid)
	var res WalkForwardResult

	for start := 0; start+cfg.InSample+cfg.OutSample <= n; start += cfg.OutSample {
		trainEnd := start + cfg.InSample
		testEnd := trainEnd + cfg.OutSample

		fold := Fold{
			Index:      len(res.Folds),
			TrainStart: start,
			TrainEnd:   trainEnd,
			TestStart:  trainEnd,
			TestEnd:    testEnd,
		}

		train := &Runner{
			Series:  r.Series.Slice(start, trainEnd),
			Size:    r.Size,
			Factory: r.Factory,
			Workers: r.Workers,
		}
		outcomes := train.Run(ctx, Tasks(fmt.Sprintf("wf%02d", fold.Index), sets))
		winner, err := Best(outcomes, fit)
		if err != nil {
			return res, fmt.Errorf("walkforward fold %d: %w", fold.Index, err)
		}
		fold.Params = winner.Task.Params
		fold.InSample = winner.Summary

		test := &Runner{
			Series:  r.Series.Slice(trainEnd, testEnd),
			Size:    r.Size,
			Factory: r.Factory,
			Workers: 1,
		}
		oos := test.Run(ctx, []Task{{
			ID:     fmt.Sprintf("wf%02d-oos", fold.Index),
			Params: fold.Params,
		}})
		if oos[0].Err != nil {
			return res, fmt.Errorf("walkforward fold %d out-of-sample: %w", fold.Index, oos[0].Err)
		}
		fold.OutSample = oos[0].Summary

		res.Folds = append(res.Folds, fold)
		res.OOSProfit += fold.OutSample.Profit
		res.OOSTrades += fold.OutSample.Trades
		res.OOSWins += fold.OutSample.Wins
		res.OOSLosses += fold.OutSample.Losses
	}

	return res, nil
}
