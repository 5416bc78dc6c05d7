// Package sweep reruns the backtest engine across parameter sets and
// selects best performers by a fitness metric. Each run owns a private
// Strategy+Engine pair, so the layer is embarrassingly parallel: a fixed
// worker pool with a plain fork-join barrier, no shared mutable state.
package sweep

import (
	"fmt"
)

// Params is one strategy hyperparameter bundle. Frozen for the duration of
// a run; only the genetic layer creates modified copies between runs.
type Params map[string]float64

func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Range describes one swept parameter dimension.
type Range struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Values expands the range inclusively: Min, Min+Step, ... <= Max.
func (r Range) Values() []float64 {
	if r.Step <= 0 {
		return []float64{r.Min}
	}
	var out []float64
	// The epsilon keeps Max itself in the set despite float accumulation.
	for v := r.Min; v <= r.Max+r.Step/1e9; v += r.Step {
		out = append(out, v)
	}
	return out
}

// Expand builds the cartesian product of all ranges, in deterministic
// order (first range varies slowest).
func Expand(ranges []Range) []Params {
	sets := []Params{{}}
	for _, r := range ranges {
		vals := r.Values()
		next := make([]Params, 0, len(sets)*len(vals))
		for _, base := range sets {
			for _, v := range vals {
				p := base.Clone()
				p[r.Name] = v
				next = append(next, p)
			}
		}
		sets = next
	}
	return sets
}

// Tasks wraps parameter sets with stable sequential IDs.
func Tasks(prefix string, sets []Params) []Task {
	tasks := make([]Task, len(sets))
	for i, p := range sets {
		tasks[i] = Task{
			ID:     fmt.Sprintf("%s-%04d", prefix, i),
			Params: p,
		}
	}
	return tasks
}
