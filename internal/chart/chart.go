package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"IndexPulse/internal/applog"
	"IndexPulse/internal/model"
)

// Colors for the movers charts, green for gainers and red for losers.
const (
	ColorGain = "2e7d32"
	ColorLoss = "c62828"
)

// Renderer draws ranking bar charts to PNG files.
type Renderer struct {
	width  int
	height int
	log    *applog.Logger
}

// NewRenderer creates a Renderer with the default canvas size.
func NewRenderer(log *applog.Logger) *Renderer {
	return &Renderer{width: 900, height: 512, log: log}
}

// RenderBars writes one bar chart of (symbol, value) pairs. An empty
// ranking produces no file; the caller already reports "no data" in the
// text report, so a blank chart would only confuse.
func (r *Renderer) RenderBars(title string, entries []model.Entry, colorHex, path string) error {
	if len(entries) == 0 {
		r.log.Warnf("chart %q skipped: no entries", title)
		return nil
	}

	fill := drawing.ColorFromHex(colorHex)
	bars := make([]chart.Value, len(entries))
	min, max := 0.0, 0.0
	for i, e := range entries {
		bars[i] = chart.Value{
			Label: e.Symbol,
			Value: e.Value,
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 0,
			},
		}
		if e.Value < min {
			min = e.Value
		}
		if e.Value > max {
			max = e.Value
		}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			// Keep zero in frame so magnitudes read correctly.
			Range: &chart.ContinuousRange{Min: min * 1.1, Max: max*1.1 + 0.1},
		},
		Bars: bars,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart %q: %w", title, err)
	}
	r.log.Infof("chart saved: %s", path)
	return nil
}
