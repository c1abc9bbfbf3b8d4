package model

// SymbolMetrics holds the derived statistics for one symbol. Metrics that
// cannot be computed (missing 52-week range, missing 30-day price) are
// marked unavailable rather than zeroed.
type SymbolMetrics struct {
	Symbol       string
	LastPrice    float64
	Week52High   OptFloat
	Week52Low    OptFloat
	PctChange    float64
	PctBelowHigh OptFloat
	PctAboveLow  OptFloat
	Return30Day  OptFloat
}
