// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// ExportTradesCSV writes the trade list for external plotting tools.
func ExportTradesCSV(path string, trades []TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"trade_id", "side", "size", "entry_time", "entry_price",
		"exit_time", "exit_price", "profit", "open", "comment",
	}); err != nil {
		return err
	}

	for _, t := range trades {
		exitTime := ""
		exitPrice := ""
		profit := ""
		if !t.Open {
			exitTime = t.ExitTime.Format(time.RFC3339)
			exitPrice = fstr(t.ExitPrice)
			profit = fstr(float64(t.Profit))
		}
		if err := w.Write([]string{
			t.TradeID,
			t.Side,
			fstr(t.Size),
			t.EntryTime.Format(time.RFC3339),
			fstr(t.EntryPrice),
			exitTime,
			exitPrice,
			profit,
			strconv.FormatBool(t.Open),
			t.Comment,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ExportCashCSV writes the per-bar cash series (the equity curve input).
func ExportCashCSV(path string, cash []CashRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "cash"}); err != nil {
		return err
	}

	for _, c := range cash {
		if err := w.Write([]string{
			c.Time.Format(time.RFC3339),
			fstr(c.Cash),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fstr(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
