package collector

import (
	"context"

	"IndexPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// It implements both fetcher interfaces.
type MockFetcher struct {
	Records []model.PriceRecord
	Closes  map[string][]model.DailyClose
	SnapErr error
	HistErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIndexSnapshot(_ context.Context) ([]model.PriceRecord, error) {
	if m.SnapErr != nil {
		return nil, m.SnapErr
	}
	out := make([]model.PriceRecord, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

func (m *MockFetcher) FetchDailyCloses(_ context.Context, symbol string, _ int) ([]model.DailyClose, error) {
	if m.HistErr != nil {
		return nil, m.HistErr
	}
	return m.Closes[symbol], nil
}
