package recorder

import (
	"time"

	"IndexPulse/internal/model"
)

// RunRecord holds everything worth keeping about one analysis run.
type RunRecord struct {
	Timestamp    time.Time
	IndexName    string
	SymbolCount  int // records that entered the calculator
	SkippedCount int // records dropped for data quality
	Rankings     model.Rankings
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(run *RunRecord) error
	Close() error
}
