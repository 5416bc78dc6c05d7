package strategies

import "github.com/rustyeddy/futback/backtest"

func init() {
	Register("noop", func(map[string]float64) (backtest.Strategy, error) {
		return Noop{}, nil
	})
}

// Noop never trades. Baseline for engine and metric degeneracy tests.
type Noop struct{}

func (Noop) Name() string                  { return "noop" }
func (Noop) Reset()                        {}
func (Noop) OnBar(*backtest.Context) error { return nil }
