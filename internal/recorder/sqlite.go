package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"IndexPulse/internal/applog"
	"IndexPulse/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	log *applog.Logger
	mu  sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *applog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			index_name    TEXT NOT NULL,
			symbol_count  INTEGER,
			skipped_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS run_entries (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id  INTEGER NOT NULL REFERENCES runs(id),
			section TEXT NOT NULL,
			rank    INTEGER NOT NULL,
			symbol  TEXT NOT NULL,
			value   REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_run ON run_entries(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run header and all ranking entries in one transaction.
func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs (timestamp, index_name, symbol_count, skipped_count)
		VALUES (?,?,?,?)`,
		run.Timestamp.Unix(), run.IndexName, run.SymbolCount, run.SkippedCount,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	sections := []struct {
		name    string
		entries []model.Entry
	}{
		{"gainers", run.Rankings.Gainers},
		{"losers", run.Rankings.Losers},
		{"below_high", run.Rankings.BelowHigh},
		{"above_low", run.Rankings.AboveLow},
		{"return_30d", run.Rankings.Return30Day},
	}
	for _, sec := range sections {
		for i, e := range sec.entries {
			if _, err := tx.Exec(`INSERT INTO run_entries (run_id, section, rank, symbol, value)
				VALUES (?,?,?,?,?)`,
				runID, sec.name, i+1, e.Symbol, e.Value,
			); err != nil {
				return fmt.Errorf("insert %s entry: %w", sec.name, err)
			}
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Debug("closing sqlite recorder")
	return r.db.Close()
}
