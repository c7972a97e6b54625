package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := New("debug", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Sugar().Infow("rendered", "points", 42)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"points":42`) {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestNewRejectsLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Error("unknown level accepted")
	}
}
