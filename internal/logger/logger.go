package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel parses a level name, falling back to info
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// CatalogLoaded logs a completed catalog load
func (l *Logger) CatalogLoaded(source string, entries, categories int, duration time.Duration) {
	l.Info("catalog loaded",
		"source", source,
		"entries", entries,
		"categories", categories,
		"duration", duration.Round(time.Millisecond))
}

// EntryInvalid logs an entry file that failed to load
func (l *Logger) EntryInvalid(file string, err error) {
	l.Error("invalid entry",
		"file", file,
		"error", err)
}

// LintFinding logs one lint diagnostic. Errors log at error level.
func (l *Logger) LintFinding(entry, section string, line int, isError bool, message string) {
	fields := []interface{}{
		"entry", entry,
		"section", section,
		"line", line,
		"message", message,
	}
	if isError {
		l.Error("lint error", fields...)
		return
	}
	l.Warn("lint warning", fields...)
}

// SectionRendered logs a rendered section
func (l *Logger) SectionRendered(entry, section string, width int) {
	l.Debug("section rendered",
		"entry", entry,
		"section", section,
		"width", width)
}

// FileChanged logs a catalog file change picked up by watch mode
func (l *Logger) FileChanged(file, op string) {
	l.Info("file changed",
		"file", file,
		"op", op)
}

// WatchStarted logs the start of watch mode
func (l *Logger) WatchStarted(dir string, debounce time.Duration) {
	l.Info("watch started",
		"dir", dir,
		"debounce", debounce)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(catalogDir, theme string) {
	if catalogDir == "" {
		catalogDir = "builtin"
	}
	l.Debug("config loaded",
		"catalog_dir", catalogDir,
		"theme", theme)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
