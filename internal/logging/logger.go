// Package logging wraps charmbracelet/log with a process-wide logger.
// Diagnostics go to stderr; human-facing progress output is printed by
// the callers themselves.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// Logger is the global logger instance
var Logger = newLogger(os.Stderr, log.InfoLevel)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
	})
	if f, ok := w.(*os.File); ok && !isTerminal(f) {
		logger.SetFormatter(log.LogfmtFormatter)
		logger.SetTimeFormat(time.RFC3339)
	}
	return logger
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Init configures the global logger level from a string such as
// "debug", "info", "warn" or "error". Unknown values keep info.
func Init(level string) {
	Logger.SetLevel(ParseLevel(level))
}

// ParseLevel converts a level name into a log.Level, defaulting to info
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// WithPrefix returns a logger with a component prefix
func WithPrefix(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
