package strategies

import "github.com/rustyeddy/futback/backtest"

func init() {
	Register("open-once", func(p map[string]float64) (backtest.Strategy, error) {
		return &OpenOnce{Size: param(p, "size", 1)}, nil
	})
}

// OpenOnce buys on the first bar and flattens on the last. One round trip
// per run, which makes ledger behavior easy to reason about by hand.
type OpenOnce struct {
	Size   float64
	opened bool
}

func (s *OpenOnce) Name() string { return "open-once" }

func (s *OpenOnce) Reset() {
	s.opened = false
}

func (s *OpenOnce) OnBar(ctx *backtest.Context) error {
	if !s.opened {
		ctx.Buy(s.Size, "open once")
		s.opened = true
		return nil
	}
	if ctx.IsLastBar() && !ctx.IsFlat() {
		ctx.Flat("end of data")
	}
	return nil
}
