package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/futback/market"
)

// ATR is a streaming Average True Range (Wilder smoothing).
type ATR struct {
	period    int
	atr       float64
	count     int
	warmupSum float64
	prevClose float64
	havePrev  bool
}

func NewATR(period int) *ATR {
	return &ATR{period: period}
}

func (a *ATR) Name() string {
	return fmt.Sprintf("ATR(%d)", a.period)
}

func (a *ATR) Warmup() int {
	// One extra bar for the first previous close.
	return a.period + 1
}

func (a *ATR) Reset() {
	a.atr = 0
	a.count = 0
	a.warmupSum = 0
	a.prevClose = 0
	a.havePrev = false
}

func (a *ATR) Update(b market.Bar) {
	if !a.havePrev {
		a.prevClose = b.Close
		a.havePrev = true
		return
	}

	tr := math.Max(b.High-b.Low,
		math.Max(math.Abs(b.High-a.prevClose), math.Abs(b.Low-a.prevClose)))
	a.prevClose = b.Close

	if a.count < a.period {
		a.warmupSum += tr
		a.count++
		if a.count == a.period {
			a.atr = a.warmupSum / float64(a.period)
		}
		return
	}

	a.atr = (a.atr*float64(a.period-1) + tr) / float64(a.period)
}

func (a *ATR) Ready() bool {
	return a.count >= a.period
}

func (a *ATR) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.atr
}
