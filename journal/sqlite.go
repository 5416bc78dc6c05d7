package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores run snapshots in three tables (runs, trades, cash).
// Params and metrics live as JSON columns; trades and the cash series are
// row-per-record so they can be queried and exported directly.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// RecordRun writes the whole snapshot in one transaction.
func (j *SQLite) RecordRun(snap Snapshot) error {
	params, err := json.Marshal(snap.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	mets, err := json.Marshal(snap.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, ticker, size, initial_cash, params, metrics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID, snap.Created, snap.Strategy, snap.Ticker,
		snap.Size, snap.InitialCash, string(params), string(mets),
	)
	if err != nil {
		return err
	}

	for _, t := range snap.Trades {
		var exitTime any
		var exitPrice, profit any
		if !t.Open {
			exitTime = t.ExitTime
			exitPrice = t.ExitPrice
			profit = float64(t.Profit)
		}
		_, err = tx.Exec(`
			INSERT INTO trades
			(trade_id, run_id, side, size, entry_time, entry_price, exit_time, exit_price, profit, open, comment)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.TradeID, snap.RunID, t.Side, t.Size, t.EntryTime, t.EntryPrice,
			exitTime, exitPrice, profit, boolInt(t.Open), t.Comment,
		)
		if err != nil {
			return err
		}
	}

	for _, c := range snap.Cash {
		if _, err = tx.Exec(`
			INSERT INTO cash (run_id, time, cash) VALUES (?, ?, ?)`,
			snap.RunID, c.Time, c.Cash,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun reassembles a full snapshot by run ID.
func (j *SQLite) GetRun(runID string) (Snapshot, error) {
	var snap Snapshot
	var params, mets string

	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, ticker, size, initial_cash, params, metrics
		FROM runs WHERE run_id = ?`, runID)

	err := row.Scan(&snap.RunID, &snap.Created, &snap.Strategy, &snap.Ticker,
		&snap.Size, &snap.InitialCash, &params, &mets)
	if err != nil {
		if err == sql.ErrNoRows {
			return Snapshot{}, fmt.Errorf("run %q not found", runID)
		}
		return Snapshot{}, err
	}

	if err := json.Unmarshal([]byte(params), &snap.Params); err != nil {
		return Snapshot{}, fmt.Errorf("parse params: %w", err)
	}
	if err := json.Unmarshal([]byte(mets), &snap.Metrics); err != nil {
		return Snapshot{}, fmt.Errorf("parse metrics: %w", err)
	}

	if snap.Trades, err = j.ListTradesByRun(runID); err != nil {
		return Snapshot{}, err
	}
	if snap.Cash, err = j.ListCashByRun(runID); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// RunInfo is one line of the run listing.
type RunInfo struct {
	RunID    string
	Created  time.Time
	Strategy string
	Ticker   string
}

func (j *SQLite) ListRuns() ([]RunInfo, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, ticker
		FROM runs ORDER BY run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.RunID, &r.Created, &r.Strategy, &r.Ticker); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, side, size, entry_time, entry_price, exit_time, exit_price, profit, open, comment
		FROM trades WHERE run_id = ? ORDER BY entry_time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		var open int
		var exitTime sql.NullTime
		var exitPrice, profit sql.NullFloat64
		if err := rows.Scan(&rec.TradeID, &rec.Side, &rec.Size, &rec.EntryTime,
			&rec.EntryPrice, &exitTime, &exitPrice, &profit, &open, &rec.Comment); err != nil {
			return nil, err
		}
		rec.Open = open != 0
		if rec.Open {
			rec.Profit = Float(math.NaN())
		} else {
			rec.ExitTime = exitTime.Time
			rec.ExitPrice = exitPrice.Float64
			rec.Profit = Float(profit.Float64)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SQLite) ListCashByRun(runID string) ([]CashRecord, error) {
	rows, err := j.db.Query(`
		SELECT time, cash FROM cash
		WHERE run_id = ? ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CashRecord
	for rows.Next() {
		var rec CashRecord
		if err := rows.Scan(&rec.Time, &rec.Cash); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
