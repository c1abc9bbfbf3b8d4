package ranker

import (
	"sort"

	"IndexPulse/internal/model"
)

// Metric selects which derived statistic a ranking is ordered by.
type Metric int

const (
	MetricPctChange Metric = iota
	MetricPctBelowHigh
	MetricPctAboveLow
	MetricReturn30Day
)

// Direction is the sort direction of the primary ranking key.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// DefaultTopN matches the original report size.
const DefaultTopN = 5

// Options controls how BuildAll assembles the five rankings.
type Options struct {
	TopN         int
	BelowHighMin float64 // minimum % below 52-week high to qualify, 0 disables
	AboveLowMin  float64 // minimum % above 52-week low to qualify, 0 disables
}

// Rank returns the top n entries ordered by the selected metric. Symbols
// whose metric is unavailable are excluded. Ties break on ascending symbol
// so identical input always yields identical output. The input slice is
// never mutated; fewer than n eligible symbols yield all of them, zero
// eligible an empty ranking.
func Rank(metrics []model.SymbolMetrics, metric Metric, dir Direction, n int) []model.Entry {
	return rankFiltered(metrics, metric, dir, n, 0)
}

func rankFiltered(metrics []model.SymbolMetrics, metric Metric, dir Direction, n int, min float64) []model.Entry {
	if n <= 0 {
		n = DefaultTopN
	}

	entries := make([]model.Entry, 0, len(metrics))
	for _, m := range metrics {
		v, ok := metricValue(m, metric)
		if !ok {
			continue
		}
		if min != 0 && v < min {
			continue
		}
		entries = append(entries, model.Entry{Symbol: m.Symbol, Value: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value == entries[j].Value {
			return entries[i].Symbol < entries[j].Symbol
		}
		if dir == Ascending {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Value > entries[j].Value
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// BuildAll produces the five report rankings from one set of metrics.
func BuildAll(metrics []model.SymbolMetrics, opts Options) model.Rankings {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return model.Rankings{
		TopN:         opts.TopN,
		BelowHighMin: opts.BelowHighMin,
		AboveLowMin:  opts.AboveLowMin,
		Gainers:      Rank(metrics, MetricPctChange, Descending, opts.TopN),
		Losers:       Rank(metrics, MetricPctChange, Ascending, opts.TopN),
		BelowHigh:    rankFiltered(metrics, MetricPctBelowHigh, Descending, opts.TopN, opts.BelowHighMin),
		AboveLow:     rankFiltered(metrics, MetricPctAboveLow, Descending, opts.TopN, opts.AboveLowMin),
		Return30Day:  Rank(metrics, MetricReturn30Day, Descending, opts.TopN),
	}
}

func metricValue(m model.SymbolMetrics, metric Metric) (float64, bool) {
	switch metric {
	case MetricPctChange:
		return m.PctChange, true
	case MetricPctBelowHigh:
		return m.PctBelowHigh.Value, m.PctBelowHigh.Valid
	case MetricPctAboveLow:
		return m.PctAboveLow.Value, m.PctAboveLow.Valid
	case MetricReturn30Day:
		return m.Return30Day.Value, m.Return30Day.Valid
	default:
		return 0, false
	}
}
