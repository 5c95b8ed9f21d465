package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
)

// RunLog is a plain-text record of one installer run, kept in the temp
// directory so it survives a failed install. Safe for concurrent use.
type RunLog struct {
	mu   sync.Mutex
	file *os.File
	path string
	now  func() time.Time
}

// OpenRunLog creates dir/{prefix}-{timestamp}.log. An empty dir means os.TempDir().
func OpenRunLog(dir, prefix string) (*RunLog, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	timestamp := time.Now().Format("20060102-150405")
	logPath := filepath.Join(dir, fmt.Sprintf("%s-%s.log", prefix, timestamp))

	//nolint:gosec // G304: logPath is built from the temp directory and a fixed prefix
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	l := &RunLog{file: f, path: logPath, now: time.Now}
	l.Write("INFO", fmt.Sprintf("=== %s log, started %s ===", prefix, time.Now().Format(time.RFC3339)))
	return l, nil
}

// Path returns the log file path
func (l *RunLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Write appends one line with its level and fields
func (l *RunLog) Write(level, msg string, fields ...interfaces.Field) {
	if l == nil || l.file == nil {
		return
	}

	var b strings.Builder
	b.WriteString(l.now().Format("15:04:05.000"))
	b.WriteString(" ")
	fmt.Fprintf(&b, "%-5s ", level)
	b.WriteString(msg)
	if f := formatFields(fields); f != "" {
		b.WriteString(" ")
		b.WriteString(f)
	}
	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.file.WriteString(b.String())
}

// Close writes the closing line and closes the file
func (l *RunLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.Write("INFO", fmt.Sprintf("=== log ended %s ===", time.Now().Format(time.RFC3339)))

	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.file.Close()
	l.file = nil
	return err
}

func formatFields(fields []interfaces.Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}
