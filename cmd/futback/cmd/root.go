package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "futback",
	Short: "A single-asset futures backtesting toolkit",
	Long: `Futback replays historical OHLC bars through a trading strategy,
synthesizes fills for one open position at a time, and reports the
standard performance statistics.

It provides tools for:
  - Backtesting strategies against bar data (CSV, .xz, .zip)
  - Grid, genetic, and walk-forward parameter sweeps
  - Persisting run snapshots to JSON and SQLite
  - Exporting trades and equity curves for plotting`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
