package indicators

import (
	"fmt"

	"github.com/rustyeddy/futback/market"
)

// Donchian tracks the highest high and lowest low over the trailing period.
// Upper/Lower reflect the channel of the bars fed so far, excluding nothing;
// breakout strategies should read the channel before feeding the current bar
// if they want the classic "previous N bars" definition.
type Donchian struct {
	period int
	bars   []market.Bar
}

func NewDonchian(period int) *Donchian {
	return &Donchian{
		period: period,
		bars:   make([]market.Bar, 0, period),
	}
}

func (d *Donchian) Name() string {
	return fmt.Sprintf("Donchian(%d)", d.period)
}

func (d *Donchian) Warmup() int {
	return d.period
}

func (d *Donchian) Reset() {
	d.bars = d.bars[:0]
}

func (d *Donchian) Update(b market.Bar) {
	d.bars = append(d.bars, b)
	if len(d.bars) > d.period {
		d.bars = d.bars[1:]
	}
}

func (d *Donchian) Ready() bool {
	return len(d.bars) >= d.period
}

func (d *Donchian) Upper() float64 {
	hi := 0.0
	for i, b := range d.bars {
		if i == 0 || b.High > hi {
			hi = b.High
		}
	}
	return hi
}

func (d *Donchian) Lower() float64 {
	lo := 0.0
	for i, b := range d.bars {
		if i == 0 || b.Low < lo {
			lo = b.Low
		}
	}
	return lo
}

// Value returns the channel midline.
func (d *Donchian) Value() float64 {
	if !d.Ready() {
		return 0
	}
	return (d.Upper() + d.Lower()) / 2
}
