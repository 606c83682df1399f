package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crewboard/crewboard/internal/config"
)

// FileName is the log file kept under the board's logs directory.
const FileName = "crewboard.log"

// Logger appends leveled, timestamped lines to .crewboard/logs. It uses
// the same line layout as the activity journal so both files read the
// same way, but it records runtime faults rather than board activity.
type Logger struct {
	file *os.File
}

// New creates (or reuses) the log file for the current board directory.
func New(boardDir string) (*Logger, error) {
	logDir := filepath.Join(boardDir, config.CrewboardDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{file: f}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Infof records an informational event.
func (l *Logger) Infof(format string, args ...any) {
	l.write("INFO", format, args...)
}

// Errorf records a fault the user may want to investigate after the
// TUI exits, like an unreadable snapshot or a failed save.
func (l *Logger) Errorf(format string, args ...any) {
	l.write("ERROR", format, args...)
}

func (l *Logger) write(level, format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.file, "%s %-5s %s\n", time.Now().UTC().Format(time.RFC3339), level, msg)
}
