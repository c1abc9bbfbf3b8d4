package collector

import (
	"context"

	"IndexPulse/internal/model"
)

// SnapshotFetcher supplies the live per-symbol quote table for the index.
// Every record must carry symbol, last price and previous close; the
// 52-week extremes may be absent per symbol.
type SnapshotFetcher interface {
	FetchIndexSnapshot(ctx context.Context) ([]model.PriceRecord, error)
	Name() string
}

// HistoryFetcher supplies trailing daily closes for one symbol.
type HistoryFetcher interface {
	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]model.DailyClose, error)
	Name() string
}
