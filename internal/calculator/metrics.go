package calculator

import (
	"errors"
	"fmt"
	"math"

	"IndexPulse/internal/model"
)

// ErrEmptyInput is returned when Compute receives zero price records.
// An empty run almost always means the upstream fetch failed, so it aborts
// immediately instead of producing empty rankings.
var ErrEmptyInput = errors.New("no price records to analyze")

// DataQualityError reports a price field that is unusable for metric
// computation: zero, negative, non-finite, or a 52-week low above the high.
type DataQualityError struct {
	Symbol string
	Field  string
	Value  float64
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("data quality: symbol %s field %s has invalid value %g", e.Symbol, e.Field, e.Value)
}

// Skipped records a symbol excluded from the run and the reason.
type Skipped struct {
	Symbol string
	Reason *DataQualityError
}

// Compute derives one SymbolMetrics per valid record.
//
// Policy: a record failing validation is skipped entirely (it appears in no
// ranking) and reported in the skipped list so the caller can log a warning;
// one bad record never aborts the run. Metrics whose inputs are merely
// absent are marked unavailable, which is a normal state, not an error.
func Compute(records []model.PriceRecord) ([]model.SymbolMetrics, []Skipped, error) {
	if len(records) == 0 {
		return nil, nil, ErrEmptyInput
	}

	metrics := make([]model.SymbolMetrics, 0, len(records))
	var skipped []Skipped
	for _, r := range records {
		if dq := validate(r); dq != nil {
			skipped = append(skipped, Skipped{Symbol: r.Symbol, Reason: dq})
			continue
		}
		metrics = append(metrics, derive(r))
	}
	return metrics, skipped, nil
}

// derive assumes r passed validation, so every denominator is a positive
// finite number and every produced value is finite.
func derive(r model.PriceRecord) model.SymbolMetrics {
	m := model.SymbolMetrics{
		Symbol:     r.Symbol,
		LastPrice:  r.LastPrice,
		Week52High: r.Week52High,
		Week52Low:  r.Week52Low,
	}
	m.PctChange = (r.LastPrice - r.PreviousClose) / r.PreviousClose * 100
	if r.Week52High.Valid {
		// Zero or negative when trading at or above the high; no clamping.
		m.PctBelowHigh = model.Opt((r.Week52High.Value - r.LastPrice) / r.Week52High.Value * 100)
	}
	if r.Week52Low.Valid {
		m.PctAboveLow = model.Opt((r.LastPrice - r.Week52Low.Value) / r.Week52Low.Value * 100)
	}
	if r.Price30DaysAgo.Valid {
		m.Return30Day = model.Opt((r.LastPrice - r.Price30DaysAgo.Value) / r.Price30DaysAgo.Value * 100)
	}
	return m
}

func validate(r model.PriceRecord) *DataQualityError {
	if dq := checkPositive(r.Symbol, "lastPrice", r.LastPrice); dq != nil {
		return dq
	}
	if dq := checkPositive(r.Symbol, "previousClose", r.PreviousClose); dq != nil {
		return dq
	}
	if r.Week52High.Valid {
		if dq := checkPositive(r.Symbol, "week52High", r.Week52High.Value); dq != nil {
			return dq
		}
	}
	if r.Week52Low.Valid {
		if dq := checkPositive(r.Symbol, "week52Low", r.Week52Low.Value); dq != nil {
			return dq
		}
	}
	if r.Week52High.Valid && r.Week52Low.Valid && r.Week52Low.Value > r.Week52High.Value {
		return &DataQualityError{Symbol: r.Symbol, Field: "week52Low", Value: r.Week52Low.Value}
	}
	if r.Price30DaysAgo.Valid {
		if dq := checkPositive(r.Symbol, "price30DaysAgo", r.Price30DaysAgo.Value); dq != nil {
			return dq
		}
	}
	return nil
}

func checkPositive(symbol, field string, v float64) *DataQualityError {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return &DataQualityError{Symbol: symbol, Field: field, Value: v}
	}
	return nil
}
