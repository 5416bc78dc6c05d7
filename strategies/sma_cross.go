package strategies

import (
	"fmt"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/indicators"
)

func init() {
	Register("sma-cross", func(p map[string]float64) (backtest.Strategy, error) {
		return NewSMACross(
			int(param(p, "fast", 10)),
			int(param(p, "slow", 30)),
			param(p, "size", 1),
		)
	})
}

// SMACross trades fast/slow Simple Moving Average crossovers.
type SMACross struct {
	maCross
	fastPeriod int
	slowPeriod int
}

func NewSMACross(fast, slow int, size float64) (*SMACross, error) {
	if fast <= 0 || slow <= 0 || fast >= slow {
		return nil, fmt.Errorf("sma-cross: need 0 < fast < slow, got fast=%d slow=%d", fast, slow)
	}
	s := &SMACross{fastPeriod: fast, slowPeriod: slow}
	s.size = size
	s.fast = indicators.NewMA(fast)
	s.slow = indicators.NewMA(slow)
	return s, nil
}

func (s *SMACross) Name() string {
	return fmt.Sprintf("sma-cross(%d,%d)", s.fastPeriod, s.slowPeriod)
}

func (s *SMACross) Reset() {
	s.reset()
}

func (s *SMACross) OnBar(ctx *backtest.Context) error {
	return s.onBar(ctx)
}
