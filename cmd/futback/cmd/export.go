package cmd

import (
	"fmt"

	"github.com/rustyeddy/futback/journal"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a run's trades and cash series as CSV",
	Long: `Export writes the trade list and the per-bar cash series of a
journaled run (or a JSON snapshot) to CSV files for plotting.

Example:
  futback export 01J8Z3K9VQ5W2X7Y --trades-out trades.csv --cash-out cash.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var (
	exDBPath    string
	exSnapPath  string
	exTradesOut string
	exCashOut   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exDBPath, "db", "d", "./futback.sqlite", "path to SQLite run journal")
	exportCmd.Flags().StringVar(&exSnapPath, "snapshot", "", "load from a JSON snapshot instead of the journal")
	exportCmd.Flags().StringVar(&exTradesOut, "trades-out", "", "write trades CSV here")
	exportCmd.Flags().StringVar(&exCashOut, "cash-out", "", "write cash series CSV here")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exTradesOut == "" && exCashOut == "" {
		return fmt.Errorf("nothing to export: give --trades-out and/or --cash-out")
	}
	if exSnapPath == "" && len(args) == 0 {
		return fmt.Errorf("give a run ID or --snapshot")
	}

	var snap journal.Snapshot
	var err error
	if exSnapPath != "" {
		snap, err = journal.LoadSnapshot(exSnapPath)
	} else {
		var j *journal.SQLite
		j, err = journal.NewSQLite(exDBPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer j.Close()
		snap, err = j.GetRun(args[0])
	}
	if err != nil {
		return err
	}

	if exTradesOut != "" {
		if err := journal.ExportTradesCSV(exTradesOut, snap.Trades); err != nil {
			return fmt.Errorf("export trades: %w", err)
		}
		fmt.Printf("Trades: %s (%d rows)\n", exTradesOut, len(snap.Trades))
	}
	if exCashOut != "" {
		if err := journal.ExportCashCSV(exCashOut, snap.Cash); err != nil {
			return fmt.Errorf("export cash: %w", err)
		}
		fmt.Printf("Cash:   %s (%d rows)\n", exCashOut, len(snap.Cash))
	}
	return nil
}
