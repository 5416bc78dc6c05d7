package indicators

import (
	"testing"
	"time"

	"github.com/rustyeddy/futback/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedCloses(ind Streaming, closes ...float64) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		ind.Update(market.Bar{
			Time:  base.Add(time.Duration(i) * time.Minute),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		})
	}
}

func TestSimpleMA(t *testing.T) {
	t.Parallel()

	ma := NewMA(3)
	assert.Equal(t, 3, ma.Warmup())
	assert.False(t, ma.Ready())
	assert.Equal(t, 0.0, ma.Value())

	feedCloses(ma, 1, 2, 3)
	require.True(t, ma.Ready())
	assert.InDelta(t, 2.0, ma.Value(), 1e-12)

	// Window slides: (2+3+7)/3
	feedCloses(ma, 7)
	assert.InDelta(t, 4.0, ma.Value(), 1e-12)

	ma.Reset()
	assert.False(t, ma.Ready())
}

func TestExponentialMA(t *testing.T) {
	t.Parallel()

	ema := NewEMA(3)
	assert.False(t, ema.Ready())

	// Warmup seeds the EMA with the SMA of the first period closes.
	feedCloses(ema, 1, 2, 3)
	require.True(t, ema.Ready())
	assert.InDelta(t, 2.0, ema.Value(), 1e-12)

	// Multiplier for period 3 is 0.5: 2 + (7-2)*0.5
	feedCloses(ema, 7)
	assert.InDelta(t, 4.5, ema.Value(), 1e-12)
}

func TestATR(t *testing.T) {
	t.Parallel()

	atr := NewATR(2)
	assert.Equal(t, 3, atr.Warmup())

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	bars := []market.Bar{
		{Time: base, Open: 10, High: 11, Low: 9, Close: 10},
		{Time: base.Add(time.Minute), Open: 10, High: 12, Low: 10, Close: 11},
		{Time: base.Add(2 * time.Minute), Open: 11, High: 13, Low: 10, Close: 12},
	}

	atr.Update(bars[0]) // only establishes the previous close
	assert.False(t, atr.Ready())

	// TR(bar1) = max(12-10, |12-10|, |10-10|) = 2
	// TR(bar2) = max(13-10, |13-11|, |10-11|) = 3
	atr.Update(bars[1])
	atr.Update(bars[2])
	require.True(t, atr.Ready())
	assert.InDelta(t, 2.5, atr.Value(), 1e-12)

	// Wilder smoothing: (2.5*1 + 4) / 2 with the next TR of 4.
	atr.Update(market.Bar{Time: base.Add(3 * time.Minute), Open: 12, High: 16, Low: 12, Close: 15})
	assert.InDelta(t, 3.25, atr.Value(), 1e-12)
}

func TestDonchian(t *testing.T) {
	t.Parallel()

	d := NewDonchian(3)
	assert.False(t, d.Ready())

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	highsLows := []struct{ hi, lo float64 }{
		{10, 8},
		{12, 9},
		{11, 7},
	}
	for i, hl := range highsLows {
		d.Update(market.Bar{
			Time: base.Add(time.Duration(i) * time.Minute),
			Open: hl.lo, High: hl.hi, Low: hl.lo, Close: hl.hi,
		})
	}

	require.True(t, d.Ready())
	assert.Equal(t, 12.0, d.Upper())
	assert.Equal(t, 7.0, d.Lower())
	assert.Equal(t, 9.5, d.Value())

	// The trailing window drops the oldest bar.
	d.Update(market.Bar{Time: base.Add(3 * time.Minute), Open: 9, High: 9, Low: 9, Close: 9})
	assert.Equal(t, 12.0, d.Upper())
	assert.Equal(t, 7.0, d.Lower())

	d.Update(market.Bar{Time: base.Add(4 * time.Minute), Open: 9, High: 9, Low: 9, Close: 9})
	assert.Equal(t, 11.0, d.Upper(), "bar with high 12 left the window")
}
