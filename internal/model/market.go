package model

import "time"

// OptFloat is an optional observation. Absence is signaled by Valid=false
// rather than a numeric sentinel, so a legitimate zero never masquerades
// as missing data.
type OptFloat struct {
	Value float64
	Valid bool
}

// Opt wraps a known value.
func Opt(v float64) OptFloat {
	return OptFloat{Value: v, Valid: true}
}

// PriceRecord holds one symbol's price observations for a single run.
// Symbol is unique within a run. Week52Low <= Week52High must hold when
// both are present; violated input is a data-quality error, never corrected.
type PriceRecord struct {
	Symbol         string
	LastPrice      float64
	PreviousClose  float64
	Week52High     OptFloat
	Week52Low      OptFloat
	Price30DaysAgo OptFloat
}

// DailyClose is one historical closing price observation.
type DailyClose struct {
	Date  time.Time
	Close float64
}
