package strategies

import (
	"fmt"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/indicators"
)

func init() {
	Register("breakout", func(p map[string]float64) (backtest.Strategy, error) {
		return NewBreakout(
			int(param(p, "period", 20)),
			int(param(p, "cooldown", 5)),
			param(p, "size", 1),
		)
	})
}

// Breakout enters long when the close breaks above the trailing Donchian
// channel and short when it breaks below. Positions exit when the close
// falls back through the channel midline, then a cool-down timer blocks
// re-entry for a few bars so a choppy market cannot whipsaw the ledger.
type Breakout struct {
	Period   int
	Cooldown int
	Size     float64

	channel *indicators.Donchian
	wait    int
}

func NewBreakout(period, cooldown int, size float64) (*Breakout, error) {
	if period <= 0 {
		return nil, fmt.Errorf("breakout: period must be positive, got %d", period)
	}
	if cooldown < 0 {
		return nil, fmt.Errorf("breakout: cooldown must not be negative, got %d", cooldown)
	}
	return &Breakout{
		Period:   period,
		Cooldown: cooldown,
		Size:     size,
		channel:  indicators.NewDonchian(period),
	}, nil
}

func (s *Breakout) Name() string {
	return fmt.Sprintf("breakout(%d)", s.Period)
}

func (s *Breakout) Reset() {
	s.channel.Reset()
	s.wait = 0
}

func (s *Breakout) OnBar(ctx *backtest.Context) error {
	bar := ctx.Bars()[ctx.Index()]

	if ctx.IsLastBar() {
		if !ctx.IsFlat() {
			ctx.Flat("end of data")
		}
		return nil
	}

	// Read the channel before feeding the current bar so breakouts compare
	// against the previous Period bars.
	if s.channel.Ready() {
		upper := s.channel.Upper()
		lower := s.channel.Lower()
		mid := s.channel.Value()
		close := bar.Close

		switch {
		case ctx.IsLong() && close < mid:
			ctx.Flat("back through midline")
			s.wait = s.Cooldown
		case ctx.IsShort() && close > mid:
			ctx.Flat("back through midline")
			s.wait = s.Cooldown
		case ctx.IsFlat():
			if s.wait > 0 {
				s.wait--
			} else if close > upper {
				ctx.Buy(s.Size, "channel breakout up")
			} else if close < lower {
				ctx.Sell(s.Size, "channel breakout down")
			}
		}
	}

	s.channel.Update(bar)
	return nil
}
