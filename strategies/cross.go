package strategies

import (
	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/indicators"
)

// maCross is the shared core of the moving-average crossover strategies:
// enter long on a bull cross of fast over slow, short on a bear cross,
// always passing through flat. Because the engine accepts one order per
// bar, a reversal flattens on the cross bar and enters on the next.
type maCross struct {
	size float64

	fast indicators.Streaming
	slow indicators.Streaming

	lastDiff float64
	haveLast bool
	pending  int // +1 waiting to go long, -1 short, 0 none
}

func (s *maCross) reset() {
	s.fast.Reset()
	s.slow.Reset()
	s.lastDiff = 0
	s.haveLast = false
	s.pending = 0
}

func (s *maCross) onBar(ctx *backtest.Context) error {
	bar := ctx.Bars()[ctx.Index()]
	s.fast.Update(bar)
	s.slow.Update(bar)

	if ctx.IsLastBar() {
		if !ctx.IsFlat() {
			ctx.Flat("end of data")
		}
		return nil
	}

	if !s.fast.Ready() || !s.slow.Ready() {
		return nil
	}

	diff := s.fast.Value() - s.slow.Value()
	if !s.haveLast {
		s.lastDiff = diff
		s.haveLast = true
		return nil
	}

	bull := diff > 0 && s.lastDiff <= 0
	bear := diff < 0 && s.lastDiff >= 0
	s.lastDiff = diff

	switch {
	case bull:
		s.pending = +1
	case bear:
		s.pending = -1
	}

	if s.pending == 0 {
		return nil
	}

	switch {
	case s.pending > 0 && ctx.IsShort():
		ctx.Flat("bull cross")
	case s.pending < 0 && ctx.IsLong():
		ctx.Flat("bear cross")
	case s.pending > 0 && ctx.IsLong(), s.pending < 0 && ctx.IsShort():
		// already positioned the right way
		s.pending = 0
	case ctx.IsFlat():
		if s.pending > 0 {
			ctx.Buy(s.size, "bull cross")
		} else {
			ctx.Sell(s.size, "bear cross")
		}
		s.pending = 0
	}

	return nil
}
