package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crewboard/crewboard/internal/config"
)

func TestLoggerWritesLeveledLines(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Infof("board ready: %d projects", 3)
	logger.Errorf("save failed: %v\n", os.ErrPermission)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, config.CrewboardDir, "logs", FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "INFO ") || !strings.HasSuffix(lines[0], "board ready: 3 projects") {
		t.Fatalf("info line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") || !strings.HasSuffix(lines[1], "save failed: permission denied") {
		t.Fatalf("error line = %q", lines[1])
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Infof("ignored")
	logger.Errorf("ignored")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close on nil logger: %v", err)
	}
}
