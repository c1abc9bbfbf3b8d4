package model

// Entry is one ranked row: a symbol and the value of the ranking metric.
type Entry struct {
	Symbol string
	Value  float64
}

// Rankings aggregates the five ranked lists produced by one analysis run.
type Rankings struct {
	TopN         int
	BelowHighMin float64 // minimum % below 52-week high to qualify, 0 = no screen
	AboveLowMin  float64 // minimum % above 52-week low to qualify, 0 = no screen
	Gainers      []Entry
	Losers       []Entry
	BelowHigh    []Entry
	AboveLow     []Entry
	Return30Day  []Entry
}
