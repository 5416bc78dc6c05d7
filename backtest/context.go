package backtest

import (
	"time"

	"github.com/rustyeddy/futback/market"
)

// Context is the per-bar view the engine hands to Strategy.OnBar. It carries
// the order helpers and the derived position state so strategies stay free
// of ledger bookkeeping.
type Context struct {
	e *Engine
}

// Buy submits an order to open a long position of size contracts,
// filled at the current bar's close.
func (c *Context) Buy(size float64, comment string) {
	c.e.submit(Long, size, comment)
}

// Sell submits an order to open a short position of size contracts,
// filled at the current bar's close.
func (c *Context) Sell(size float64, comment string) {
	c.e.submit(Short, -size, comment)
}

// Flat closes the open position: it sells to close a long and buys to close
// a short. Calling Flat while already flat is a silent no-op.
func (c *Context) Flat(comment string) {
	t := c.e.openTrade()
	if t == nil {
		return
	}
	size := t.Size
	if t.Side == SideLong {
		size = -size
	}
	c.e.submit(Flat, size, comment)
}

func (c *Context) IsFlat() bool  { return c.e.openTrade() == nil }
func (c *Context) IsLong() bool  { t := c.e.openTrade(); return t != nil && t.Side == SideLong }
func (c *Context) IsShort() bool { t := c.e.openTrade(); return t != nil && t.Side == SideShort }

func (c *Context) Index() int      { return c.e.idx }
func (c *Context) Time() time.Time { return c.e.bar().Time }
func (c *Context) Open() float64   { return c.e.bar().Open }
func (c *Context) High() float64   { return c.e.bar().High }
func (c *Context) Low() float64    { return c.e.bar().Low }
func (c *Context) Close() float64  { return c.e.bar().Close }

func (c *Context) IsLastBar() bool { return c.e.idx == c.e.series.Len()-1 }

// Bars returns history up to and including the current bar. No lookahead.
func (c *Context) Bars() []market.Bar {
	return c.e.series.Bars[:c.e.idx+1]
}

// Contract returns the traded instrument's static spec.
func (c *Context) Contract() market.ContractSpec {
	return c.e.series.Contract
}
