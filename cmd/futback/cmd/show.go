package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/futback/journal"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print a journaled run without re-running it",
	Long: `Show reloads a run from the SQLite journal (by run ID) or from a
JSON snapshot file and prints its metrics and trades. With no run ID
and no snapshot it lists the journaled runs.

Example:
  futback show
  futback show 01J8Z3K9VQ5W2X7Y
  futback show --snapshot runs/01J8Z3K9VQ5W2X7Y.json --trades`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var (
	showDBPath   string
	showSnapPath string
	showTrades   bool
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showDBPath, "db", "d", "./futback.sqlite", "path to SQLite run journal")
	showCmd.Flags().StringVar(&showSnapPath, "snapshot", "", "load from a JSON snapshot instead of the journal")
	showCmd.Flags().BoolVar(&showTrades, "trades", false, "also print the trade list")
}

func runShow(cmd *cobra.Command, args []string) error {
	if showSnapPath == "" && len(args) == 0 {
		return listRuns()
	}

	var snap journal.Snapshot
	var err error
	if showSnapPath != "" {
		snap, err = journal.LoadSnapshot(showSnapPath)
	} else {
		var j *journal.SQLite
		j, err = journal.NewSQLite(showDBPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer j.Close()
		snap, err = j.GetRun(args[0])
	}
	if err != nil {
		return err
	}

	printSnapshot(os.Stdout, snap)
	if showTrades {
		printTrades(os.Stdout, snap.Trades)
	}
	return nil
}

func listRuns() error {
	j, err := journal.NewSQLite(showDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no journaled runs")
		return nil
	}

	fmt.Printf("%-28s %-20s %-22s %s\n", "run", "created", "strategy", "ticker")
	for _, r := range runs {
		fmt.Printf("%-28s %-20s %-22s %s\n",
			r.RunID, r.Created.Format("2006-01-02 15:04:05"), r.Strategy, r.Ticker)
	}
	return nil
}

func printSnapshot(w *os.File, snap journal.Snapshot) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " Run %s\n", snap.RunID)
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Created:       %s\n", snap.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "Strategy:      %s\n", snap.Strategy)
	fmt.Fprintf(w, "Ticker:        %s\n", snap.Ticker)
	fmt.Fprintf(w, "Size:          %g\n", snap.Size)
	if len(snap.Params) > 0 {
		fmt.Fprintf(w, "Params:        %v\n", snap.Params)
	}

	for _, m := range snap.Rows() {
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

func printTrades(w *os.File, trades []journal.TradeRecord) {
	if len(trades) == 0 {
		return
	}
	fmt.Fprintf(w, "%-20s %-6s %-6s %-10s %-10s %-10s %s\n",
		"entry", "side", "size", "entry-px", "exit-px", "profit", "comment")
	for _, t := range trades {
		exit := "-"
		profit := "open"
		if !t.Open {
			exit = fmt.Sprintf("%.2f", t.ExitPrice)
			profit = fmt.Sprintf("%.2f", float64(t.Profit))
		}
		fmt.Fprintf(w, "%-20s %-6s %-6g %-10.2f %-10s %-10s %s\n",
			t.EntryTime.Format("2006-01-02 15:04"), t.Side, t.Size,
			t.EntryPrice, exit, profit, t.Comment)
	}
	fmt.Fprintln(w)
}
