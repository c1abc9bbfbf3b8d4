package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "results.txt")

	if err := Write(path, "report body\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "report body\n" {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	if err := Write(path, "first run"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Write(path, "second run"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "second run" {
		t.Errorf("expected the later report to win, got %q", got)
	}
}
