package chart

import (
	"os"
	"path/filepath"
	"testing"

	"IndexPulse/internal/applog"
	"IndexPulse/internal/model"
)

func TestRenderBars_EmptyRankingSkipsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gainers.png")
	r := NewRenderer(applog.Nop())

	if err := r.RenderBars("Top Gainers", nil, ColorGain, path); err != nil {
		t.Fatalf("empty ranking must not be an error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("no file expected for an empty ranking, stat err: %v", err)
	}
}

func TestRenderBars_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "losers.png")
	r := NewRenderer(applog.Nop())

	entries := []model.Entry{
		{Symbol: "AAA", Value: -3.2},
		{Symbol: "BBB", Value: -1.5},
	}
	if err := r.RenderBars("Top Losers", entries, ColorLoss, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}

	header := make([]byte, 8)
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Read(header); err != nil {
		t.Fatal(err)
	}
	if string(header[1:4]) != "PNG" {
		t.Errorf("expected a PNG signature, got % x", header)
	}
}
