package metrics

import (
	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/market"
)

// BuyAndHold builds the benchmark series for holding size contracts from
// the first bar's open: initial cash plus the full point move marked to
// each bar's close. It is a parallel, non-traded reference used only for
// comparison; it never touches the engine's ledger.
func BuyAndHold(series *market.Series, size, initialCash float64) []backtest.CashPoint {
	if series.Len() == 0 {
		return nil
	}

	firstOpen := series.First().Open
	pv := series.Contract.PointValue

	out := make([]backtest.CashPoint, 0, series.Len())
	for _, b := range series.Bars {
		out = append(out, backtest.CashPoint{
			Time: b.Time,
			Cash: initialCash + pv*size*(b.Close-firstOpen),
		})
	}
	return out
}
