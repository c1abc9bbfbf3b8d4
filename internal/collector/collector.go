package collector

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"IndexPulse/internal/applog"
	"IndexPulse/internal/model"
)

// Collector orchestrates the live snapshot fetch and the per-symbol history
// backfill, producing the PriceRecord table the analysis runs on.
type Collector struct {
	snapshot    SnapshotFetcher
	history     HistoryFetcher
	limiter     *rate.Limiter
	historyDays int
	log         *applog.Logger
	now         func() time.Time
}

// New creates a Collector. requestsPerSec paces the history loop so the
// backfill stays polite to the upstream API.
func New(snap SnapshotFetcher, hist HistoryFetcher, requestsPerSec float64, historyDays int, log *applog.Logger) *Collector {
	return &Collector{
		snapshot:    snap,
		history:     hist,
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		historyDays: historyDays,
		log:         log,
		now:         time.Now,
	}
}

// Collect fetches the index snapshot and enriches each record with the
// 30-day-ago price, backfilling the 52-week range where the snapshot lacked
// it. A failed history fetch leaves those fields absent and the run
// continues; a failed snapshot aborts, since there is nothing to analyze.
func (c *Collector) Collect(ctx context.Context) ([]model.PriceRecord, error) {
	records, err := c.snapshot.FetchIndexSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch index snapshot: %w", err)
	}
	c.log.Infof("index snapshot: %d symbols from %s", len(records), c.snapshot.Name())

	asOf := c.now()
	for i := range records {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		closes, err := c.history.FetchDailyCloses(ctx, records[i].Symbol, c.historyDays)
		if err != nil {
			c.log.WithError(err).Warnf("history unavailable for %s", records[i].Symbol)
			continue
		}
		enrich(&records[i], closes, asOf)
	}
	return records, nil
}

// enrich derives Price30DaysAgo (nearest trading day at or before 30
// calendar days back) and fills missing 52-week extremes from the close
// history, the same derivation the live source would have used.
func enrich(r *model.PriceRecord, closes []model.DailyClose, asOf time.Time) {
	if len(closes) == 0 {
		return
	}

	target := asOf.AddDate(0, 0, -30)
	for i := len(closes) - 1; i >= 0; i-- {
		if !closes[i].Date.After(target) {
			if closes[i].Close > 0 {
				r.Price30DaysAgo = model.Opt(closes[i].Close)
			}
			break
		}
	}

	if !r.Week52High.Valid || !r.Week52Low.Valid {
		high, low := closes[0].Close, closes[0].Close
		for _, dc := range closes[1:] {
			if dc.Close > high {
				high = dc.Close
			}
			if dc.Close < low {
				low = dc.Close
			}
		}
		if !r.Week52High.Valid {
			r.Week52High = model.Opt(high)
		}
		if !r.Week52Low.Valid {
			r.Week52Low = model.Opt(low)
		}
	}
}
