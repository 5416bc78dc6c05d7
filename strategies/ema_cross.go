package strategies

import (
	"fmt"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/indicators"
)

func init() {
	Register("ema-cross", func(p map[string]float64) (backtest.Strategy, error) {
		return NewEMACross(
			int(param(p, "fast", 20)),
			int(param(p, "slow", 50)),
			param(p, "size", 1),
		)
	})
}

// EMACross trades fast/slow Exponential Moving Average crossovers.
type EMACross struct {
	maCross
	fastPeriod int
	slowPeriod int
}

func NewEMACross(fast, slow int, size float64) (*EMACross, error) {
	if fast <= 0 || slow <= 0 || fast >= slow {
		return nil, fmt.Errorf("ema-cross: need 0 < fast < slow, got fast=%d slow=%d", fast, slow)
	}
	s := &EMACross{fastPeriod: fast, slowPeriod: slow}
	s.size = size
	s.fast = indicators.NewEMA(fast)
	s.slow = indicators.NewEMA(slow)
	return s, nil
}

func (s *EMACross) Name() string {
	return fmt.Sprintf("ema-cross(%d,%d)", s.fastPeriod, s.slowPeriod)
}

func (s *EMACross) Reset() {
	s.reset()
}

func (s *EMACross) OnBar(ctx *backtest.Context) error {
	return s.onBar(ctx)
}
