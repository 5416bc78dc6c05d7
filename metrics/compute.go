package metrics

import (
	"math"
	"time"

	"github.com/rustyeddy/futback/backtest"
)

// Summary is the full statistic set derived from a completed replay. It is
// a pure function of the trade list and cash series; computing it never
// mutates engine state, so it can also be rebuilt from a deserialized run.
type Summary struct {
	Start time.Time
	End   time.Time
	Days  float64

	InitialCash float64
	FinalCash   float64

	Profit              float64
	TotalReturnPct      float64
	AnnualizedReturnPct float64

	MaxDrawdown          float64 // dollars, <= 0
	DrawdownPerProfitPct float64

	Trades     int // closed round trips
	OpenTrades int // 0 or 1
	Wins       int
	Losses     int

	WinRatePct  float64
	LossRatePct float64
	AverageWin  float64
	AverageLoss float64
	Expectancy  float64

	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64

	TradesPerDay float64
	PercentLong  float64
	PercentShort float64
}

// Compute derives the summary from a finished run's trades and cash series.
//
// Degenerate inputs are handled with sentinels, never panics:
//   - zero closed trades: ratio metrics stay zero, profit factor is NaN
//   - zero gross loss: profit factor is +Inf
//   - zero gross profit with losses: profit factor is -Inf
//   - cash at or below zero: annualized return is NaN
//
// An open final trade is excluded from trade counts and from profit, since
// cash is only adjusted when a trade closes.
func Compute(trades []*backtest.Trade, cash []backtest.CashPoint, initialCash float64) Summary {
	s := Summary{
		InitialCash:  initialCash,
		FinalCash:    initialCash,
		ProfitFactor: math.NaN(),
	}

	if len(cash) > 0 {
		s.Start = cash[0].Time
		s.End = cash[len(cash)-1].Time
		s.Days = s.End.Sub(s.Start).Hours() / 24
		s.FinalCash = cash[len(cash)-1].Cash
	}

	s.Profit = s.FinalCash - s.InitialCash
	if s.InitialCash != 0 {
		s.TotalReturnPct = s.Profit / s.InitialCash * 100
	}
	s.AnnualizedReturnPct = annualized(s.InitialCash, s.FinalCash, s.Days)
	s.MaxDrawdown = maxDrawdown(cash, s.InitialCash)
	if s.Profit != 0 {
		s.DrawdownPerProfitPct = s.MaxDrawdown / s.Profit * 100
	}

	var longs int
	for _, t := range trades {
		if t.Open() {
			s.OpenTrades++
			continue
		}
		s.Trades++
		p := t.Profit()
		if p > 0 {
			s.Wins++
			s.GrossProfit += p
		} else {
			s.Losses++
			s.GrossLoss += p
		}
		if t.Side == backtest.SideLong {
			longs++
		}
	}

	if s.Trades > 0 {
		s.WinRatePct = float64(s.Wins) / float64(s.Trades) * 100
		s.LossRatePct = float64(s.Losses) / float64(s.Trades) * 100
		if s.Wins > 0 {
			s.AverageWin = s.GrossProfit / float64(s.Wins)
		}
		if s.Losses > 0 {
			s.AverageLoss = s.GrossLoss / float64(s.Losses)
		}
		s.Expectancy = s.WinRatePct/100*s.AverageWin + s.LossRatePct/100*s.AverageLoss
		s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss)
		s.PercentLong = float64(longs) / float64(s.Trades) * 100
		s.PercentShort = 100 - s.PercentLong
		if s.Days > 0 {
			s.TradesPerDay = float64(s.Trades) / s.Days
		}
	}

	return s
}

// ForEngine computes the summary straight off a completed engine.
func ForEngine(e *backtest.Engine) Summary {
	return Compute(e.Trades(), e.CashSeries(), e.InitialCash())
}

// profitFactor is gross profit over the magnitude of gross loss. The zero
// cases use deliberately asymmetric sentinels: no losses at all is +Inf,
// losses but no profit is -Inf.
func profitFactor(grossProfit, grossLoss float64) float64 {
	switch {
	case grossLoss == 0 && grossProfit == 0:
		return 0
	case grossLoss == 0:
		return math.Inf(+1)
	case grossProfit == 0:
		return math.Inf(-1)
	}
	return grossProfit / math.Abs(grossLoss)
}

// annualized is the compound growth rate of cash over elapsed days,
// undefined when cash has gone to zero or below.
func annualized(initial, final, days float64) float64 {
	if final <= 0 || initial <= 0 || days <= 0 {
		return math.NaN()
	}
	years := days / 365.25
	return (math.Pow(final/initial, 1/years) - 1) * 100
}

// maxDrawdown is the deepest peak-to-trough decline of the cash series,
// expressed in dollars against the initial balance. Zero when the series
// never dips below its running peak.
func maxDrawdown(cash []backtest.CashPoint, initial float64) float64 {
	if len(cash) == 0 || initial == 0 {
		return 0
	}

	peak := cash[0].Cash
	worst := 0.0
	for _, p := range cash {
		if p.Cash > peak {
			peak = p.Cash
		}
		if peak == 0 {
			continue
		}
		dd := (p.Cash/peak - 1) * initial
		if dd < worst {
			worst = dd
		}
	}
	return worst
}
