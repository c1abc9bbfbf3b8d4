package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"IndexPulse/internal/applog"
	"IndexPulse/internal/model"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path, applog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	run := &RunRecord{
		Timestamp:    time.Date(2026, 8, 29, 16, 0, 0, 0, time.UTC),
		IndexName:    "NIFTY 50",
		SymbolCount:  48,
		SkippedCount: 2,
		Rankings: model.Rankings{
			Gainers: []model.Entry{
				{Symbol: "AAA", Value: 4.2},
				{Symbol: "BBB", Value: 3.1},
			},
			Losers:      []model.Entry{{Symbol: "CCC", Value: -2.8}},
			BelowHigh:   []model.Entry{{Symbol: "DDD", Value: 35.0}},
			Return30Day: []model.Entry{{Symbol: "AAA", Value: 6.5}},
		},
	}
	if err := r.RecordRun(run); err != nil {
		t.Fatalf("record run: %v", err)
	}

	var name string
	var symbols, skipped int
	row := r.db.QueryRow(`SELECT index_name, symbol_count, skipped_count FROM runs`)
	if err := row.Scan(&name, &symbols, &skipped); err != nil {
		t.Fatalf("read run row: %v", err)
	}
	if name != "NIFTY 50" || symbols != 48 || skipped != 2 {
		t.Errorf("unexpected run row: %s %d %d", name, symbols, skipped)
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM run_entries`).Scan(&total); err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if total != 5 {
		t.Errorf("expected 5 ranking entries, got %d", total)
	}

	// Ranks follow list order within a section.
	var symbol string
	var value float64
	row = r.db.QueryRow(
		`SELECT symbol, value FROM run_entries WHERE section = 'gainers' AND rank = 2`)
	if err := row.Scan(&symbol, &value); err != nil {
		t.Fatalf("read gainer rank 2: %v", err)
	}
	if symbol != "BBB" || value != 3.1 {
		t.Errorf("unexpected gainer rank 2: %s %.2f", symbol, value)
	}
}

func TestSQLiteRecorder_MultipleRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path, applog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	for i := 0; i < 3; i++ {
		run := &RunRecord{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			IndexName: "NIFTY 50",
		}
		if err := r.RecordRun(run); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 runs, got %d", count)
	}
}
