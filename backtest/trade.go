package backtest

import (
	"math"

	"github.com/rustyeddy/futback/market"
)

// Side: +1 long, -1 short
type Side int8

const (
	SideLong  Side = +1
	SideShort Side = -1
)

func (s Side) String() string {
	if s == SideShort {
		return "short"
	}
	return "long"
}

// Trade is one round trip: opened by a long/short order, closed when a flat
// order is attached as Exit. It is mutated exactly once (the close); while
// Exit is nil the trade is open and its profit is NaN.
type Trade struct {
	ID     string  `json:"id"`
	Side   Side    `json:"side"`
	Size   float64 `json:"size"` // contracts, always positive
	Entry  *Order  `json:"entry"`
	Exit   *Order  `json:"exit,omitempty"`
	profit float64
}

func (t *Trade) Open() bool { return t.Exit == nil }

// Profit is the realized dollar P/L of a closed trade, NaN while open.
func (t *Trade) Profit() float64 {
	if t.Open() {
		return math.NaN()
	}
	return t.profit
}

// close attaches the exit order and realizes the price delta through the
// contract's tick spec. Long gains when price rises, short when it falls.
func (t *Trade) close(exit *Order, spec market.ContractSpec) float64 {
	t.Exit = exit
	delta := exit.Price - t.Entry.Price
	t.profit = float64(t.Side) * t.Size * spec.TickValue * delta / spec.TickSize
	return t.profit
}
