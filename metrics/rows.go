package metrics

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Rows flattens the summary into display rows, grouped under header
// markers. With zero closed trades a single "no trades" marker replaces the
// per-trade block.
func (s Summary) Rows() []Metric {
	rows := []Metric{
		{ID: "account", Title: "Account", Header: true},
		{ID: "initial_cash", Title: "Initial Cash", Value: s.InitialCash, Unit: "$"},
		{ID: "final_cash", Title: "Final Cash", Value: s.FinalCash, Unit: "$"},
		{ID: "profit", Title: "Profit", Value: s.Profit, Unit: "$"},
		{ID: "total_return", Title: "Total Return", Value: s.TotalReturnPct, Unit: "%"},
		{ID: "annualized_return", Title: "Annualized Return", Value: s.AnnualizedReturnPct, Unit: "%"},
		{ID: "max_drawdown", Title: "Max Drawdown", Value: s.MaxDrawdown, Unit: "$"},
		{ID: "drawdown_per_profit", Title: "Drawdown / Profit", Value: s.DrawdownPerProfitPct, Unit: "%"},
		{ID: "trade_stats", Title: "Trade Statistics", Header: true},
	}

	if s.Trades == 0 {
		rows = append(rows, Metric{ID: "no_trades", Title: "No trades", Header: true})
		return rows
	}

	rows = append(rows,
		Metric{ID: "trades", Title: "Trades", Value: float64(s.Trades), Unit: "count"},
		Metric{ID: "open_trades", Title: "Open Trades", Value: float64(s.OpenTrades), Unit: "count"},
		Metric{ID: "wins", Title: "Wins", Value: float64(s.Wins), Unit: "count"},
		Metric{ID: "losses", Title: "Losses", Value: float64(s.Losses), Unit: "count"},
		Metric{ID: "win_rate", Title: "Win Rate", Value: s.WinRatePct, Unit: "%"},
		Metric{ID: "loss_rate", Title: "Loss Rate", Value: s.LossRatePct, Unit: "%"},
		Metric{ID: "average_win", Title: "Average Win", Value: s.AverageWin, Unit: "$"},
		Metric{ID: "average_loss", Title: "Average Loss", Value: s.AverageLoss, Unit: "$"},
		Metric{ID: "expectancy", Title: "Expectancy", Value: s.Expectancy, Unit: "$"},
		Metric{ID: "profit_factor", Title: "Profit Factor", Value: s.ProfitFactor},
		Metric{ID: "trades_per_day", Title: "Trades per Day", Value: s.TradesPerDay},
		Metric{ID: "percent_long", Title: "Long", Value: s.PercentLong, Unit: "%"},
		Metric{ID: "percent_short", Title: "Short", Value: s.PercentShort, Unit: "%"},
	)

	return rows
}

// Print writes the grouped metric rows as formatted text lines.
func Print(w io.Writer, title string, s Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, "==================================================")

	if !s.Start.IsZero() {
		fmt.Fprintf(w, "Start:         %s\n", s.Start.Format(time.RFC3339))
		fmt.Fprintf(w, "End:           %s\n", s.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Days:          %.1f\n", s.Days)
	}

	for _, m := range s.Rows() {
		if m.Header {
			fmt.Fprintln(w)
			fmt.Fprintln(w, m.Title)
			fmt.Fprintln(w, "--------------------------------------------------")
			continue
		}
		fmt.Fprintf(w, "%-20s %s\n", m.Title+":", m.Format())
	}
	fmt.Fprintln(w)
}

// Finite reports whether v is a normal number, i.e. not one of the sentinel
// values the ratio metrics can take.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
