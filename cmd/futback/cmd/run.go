package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/futback/backtest"
	"github.com/rustyeddy/futback/config"
	"github.com/rustyeddy/futback/journal"
	"github.com/rustyeddy/futback/metrics"
	"github.com/rustyeddy/futback/strategies"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single backtest and report its metrics",
	Long: `Run replays a bar file through one strategy and prints the full
metric set. The completed run is journaled to SQLite and written as a
JSON snapshot that 'show' and 'export' can reload without re-running.

Example:
  futback run --bars data/es-1m.csv --ticker ES --strategy sma-cross \
      --param fast=10 --param slow=30`,
	RunE: runRun,
}

var (
	runConfigPath string
	runBarsPath   string
	runTicker     string
	runFrom       string
	runTo         string
	runStrategy   string
	runSize       float64
	runParamKVs   []string
	runDBPath     string
	runSnapDir    string
	runOrgPath    string
	runNoPersist  bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "config file; flags override its values")
	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to bar CSV (.csv, .csv.xz, .zip)")
	runCmd.Flags().StringVarP(&runTicker, "ticker", "t", "ES", "contract ticker")
	runCmd.Flags().StringVar(&runFrom, "from", "", "start of replay window (RFC3339 or YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runTo, "to", "", "end of replay window, exclusive")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "sma-cross", "strategy name")
	runCmd.Flags().Float64VarP(&runSize, "size", "n", 1, "contracts per position")
	runCmd.Flags().StringArrayVarP(&runParamKVs, "param", "p", nil, "strategy parameter key=value (repeatable)")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "./futback.sqlite", "path to SQLite run journal")
	runCmd.Flags().StringVar(&runSnapDir, "snapshots", "./runs", "directory for JSON run snapshots")
	runCmd.Flags().StringVar(&runOrgPath, "org", "", "also write an org-mode report to this path")
	runCmd.Flags().BoolVar(&runNoPersist, "no-persist", false, "skip journaling and snapshot writing")
}

func runRun(cmd *cobra.Command, args []string) error {
	params, err := parseParams(runParamKVs)
	if err != nil {
		return err
	}

	if runConfigPath != "" {
		if err := applyRunConfig(cmd, &params); err != nil {
			return err
		}
	}
	if runBarsPath == "" {
		return fmt.Errorf("no bar file: give --bars or --config")
	}

	series, err := loadSeries(runBarsPath, runTicker, runFrom, runTo)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	strat, err := strategies.ByName(runStrategy, params)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	engine := backtest.NewEngine(series, strat, runSize)

	fmt.Printf("Running %s on %s (%d bars)\n", strat.Name(), runTicker, series.Len())

	if err := engine.Run(context.Background()); err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	sum := metrics.ForEngine(engine)
	metrics.Print(os.Stdout, fmt.Sprintf("Backtest %s %s", strat.Name(), runTicker), sum)

	if bh := metrics.BuyAndHold(series, runSize, engine.InitialCash()); len(bh) > 0 {
		final := bh[len(bh)-1].Cash
		fmt.Printf("Buy & Hold benchmark: $%.2f (%+.2f)\n\n", final, final-engine.InitialCash())
	}

	if runNoPersist {
		return nil
	}

	snap := journal.NewSnapshot(engine, params, sum)

	j, err := journal.NewSQLite(runDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if err := j.RecordRun(snap); err != nil {
		return fmt.Errorf("journal run: %w", err)
	}

	if err := os.MkdirAll(runSnapDir, 0o755); err != nil {
		return err
	}
	snapPath := filepath.Join(runSnapDir, snap.RunID+".json")
	if err := journal.SaveSnapshot(snapPath, snap); err != nil {
		return err
	}

	if runOrgPath != "" {
		if err := snap.WriteOrg(runOrgPath); err != nil {
			return fmt.Errorf("org report: %w", err)
		}
	}

	fmt.Printf("Run ID:   %s\n", snap.RunID)
	fmt.Printf("Snapshot: %s\n", snapPath)
	return nil
}

// applyRunConfig fills in any flag the user did not set from the config
// file. Explicit flags always win.
func applyRunConfig(cmd *cobra.Command, params *map[string]float64) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if !f.Changed("bars") {
		runBarsPath = cfg.Data.Path
	}
	if !f.Changed("ticker") {
		runTicker = cfg.Data.Ticker
	}
	if !f.Changed("from") && !cfg.Data.From.IsZero() {
		runFrom = cfg.Data.From.Format(time.RFC3339)
	}
	if !f.Changed("to") && !cfg.Data.To.IsZero() {
		runTo = cfg.Data.To.Format(time.RFC3339)
	}
	if !f.Changed("strategy") {
		runStrategy = cfg.Strategy.Name
	}
	if !f.Changed("size") {
		runSize = cfg.Engine.Size
	}
	if !f.Changed("db") && cfg.Journal.DBPath != "" {
		runDBPath = cfg.Journal.DBPath
	}
	if !f.Changed("snapshots") && cfg.Journal.SnapshotDir != "" {
		runSnapDir = cfg.Journal.SnapshotDir
	}
	if *params == nil && len(cfg.Strategy.Params) > 0 {
		*params = cfg.Strategy.Params
	}
	return nil
}
