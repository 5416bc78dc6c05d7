package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/market"
	"github.com/rustyeddy/futback/metrics"
)

// Task is one parameter set queued for evaluation.
type Task struct {
	ID     string
	Params Params
}

// Outcome pairs a task with its computed summary. Err is set when the
// strategy could not be built or the replay failed; such outcomes never
// win a sweep.
type Outcome struct {
	Task    Task
	Summary metrics.Summary
	Err     error
}

// Factory builds a fresh strategy for one task. It must not share state
// between calls; every worker constructs its own instance.
type Factory func(Params) (backtest.Strategy, error)

// Runner evaluates tasks against one bar series with a fixed-size worker
// pool. The series itself is read-only and safely shared.
type Runner struct {
	Series  *market.Series
	Size    float64
	Factory Factory
	Workers int
}

// Run evaluates all tasks and returns outcomes in task order. It joins on
// every worker before returning; a canceled context surfaces as Err on the
// remaining outcomes rather than a partial slice.
func (r *Runner) Run(ctx context.Context, tasks []Task) []Outcome {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	out := make([]Outcome, len(tasks))
	jobCh := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobCh {
				out[i] = r.runOne(ctx, tasks[i])
			}
		}()
	}

	for i := range tasks {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	return out
}

func (r *Runner) runOne(ctx context.Context, task Task) Outcome {
	strat, err := r.Factory(task.Params)
	if err != nil {
		return Outcome{Task: task, Err: fmt.Errorf("task %s: %w", task.ID, err)}
	}

	e := backtest.NewEngine(r.Series, strat, r.Size)
	if err := e.Run(ctx); err != nil {
		return Outcome{Task: task, Err: fmt.Errorf("task %s: %w", task.ID, err)}
	}

	return Outcome{Task: task, Summary: metrics.ForEngine(e)}
}
