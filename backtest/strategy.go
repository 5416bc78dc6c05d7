package backtest

// Strategy decides, once per bar, whether to submit an order. OnBar may use
// only information available up to and including the current bar (the
// Context enforces this by never exposing future bars) and may submit at
// most one order per call.
type Strategy interface {
	Name() string
	Reset()
	OnBar(ctx *Context) error
}
