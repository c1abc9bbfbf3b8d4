package report

import (
	"fmt"
	"strings"
	"time"

	"IndexPulse/internal/model"
)

// Format renders the five rankings into a single plain-text block. It is
// pure string assembly; writing the result anywhere is the caller's job.
func Format(asOf time.Time, indexName string, r model.Rankings, metrics []model.SymbolMetrics) string {
	bySymbol := make(map[string]model.SymbolMetrics, len(metrics))
	for _, m := range metrics {
		bySymbol[m.Symbol] = m
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Movers Report | %s\n\n", indexName, asOf.Format("2006-01-02")))

	section(&b, fmt.Sprintf("Top %d Gainers", r.TopN), r.Gainers, func(e model.Entry) string {
		return fmt.Sprintf("Symbol: %s, %% Change: %.2f%%", e.Symbol, e.Value)
	})

	section(&b, fmt.Sprintf("Top %d Losers", r.TopN), r.Losers, func(e model.Entry) string {
		return fmt.Sprintf("Symbol: %s, %% Change: %.2f%%", e.Symbol, e.Value)
	})

	section(&b, belowHighTitle(r.BelowHighMin), r.BelowHigh, func(e model.Entry) string {
		m := bySymbol[e.Symbol]
		return fmt.Sprintf("Symbol: %s, Current Price: %.2f, 52-Week High: %.2f, Below High: %.2f%%",
			e.Symbol, m.LastPrice, m.Week52High.Value, e.Value)
	})

	section(&b, aboveLowTitle(r.AboveLowMin), r.AboveLow, func(e model.Entry) string {
		m := bySymbol[e.Symbol]
		return fmt.Sprintf("Symbol: %s, Current Price: %.2f, 52-Week Low: %.2f, Above Low: %.2f%%",
			e.Symbol, m.LastPrice, m.Week52Low.Value, e.Value)
	})

	section(&b, fmt.Sprintf("Top %d by 30-Day Return", r.TopN), r.Return30Day, func(e model.Entry) string {
		return fmt.Sprintf("Symbol: %s, 30-Day Return: %.2f%%", e.Symbol, e.Value)
	})

	return b.String()
}

func section(b *strings.Builder, title string, entries []model.Entry, row func(model.Entry) string) {
	header := fmt.Sprintf("----- %s -----", title)
	b.WriteString(header + "\n")
	if len(entries) == 0 {
		b.WriteString("No eligible symbols.\n")
	}
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, row(e)))
	}
	b.WriteString(strings.Repeat("-", len(header)) + "\n\n")
}

func belowHighTitle(min float64) string {
	if min > 0 {
		return fmt.Sprintf("Stocks %.0f%%+ Below 52-Week High", min)
	}
	return "Most Below 52-Week High"
}

func aboveLowTitle(min float64) string {
	if min > 0 {
		return fmt.Sprintf("Stocks %.0f%%+ Above 52-Week Low", min)
	}
	return "Most Above 52-Week Low"
}
