package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// ParseLogLevel parses a log level string. Unknown values map to error.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

// Logger appends timestamped lines to a log file. Pad keys must never be
// passed to it.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	file  *os.File
}

// NewLogger opens (creating if needed) the log file at filePath.
// With LogLevelOff or an empty path nothing is opened and every call is a no-op.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	logger := &Logger{level: level}

	if level == LogLevelOff || filePath == "" {
		return logger, nil
	}

	filePath = ExpandPath(filePath)
	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	logger.file = f

	return logger, nil
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LogLevelError, fmt.Sprintf(format, args...))
}

// DebugAttrs logs a debug message followed by key=value attributes.
func (l *Logger) DebugAttrs(msg string, attrs ...slog.Attr) {
	l.log(LogLevelDebug, withAttrs(msg, attrs))
}

// ErrorAttrs logs an error message followed by key=value attributes.
func (l *Logger) ErrorAttrs(msg string, attrs ...slog.Attr) {
	l.log(LogLevelError, withAttrs(msg, attrs))
}

func (l *Logger) log(level LogLevel, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level == LogLevelOff || level > l.level || l.file == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	_, _ = fmt.Fprintf(l.file, "%s [%s] %s\n", timestamp, strings.ToUpper(level.String()), msg)
}

func withAttrs(msg string, attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	return sb.String()
}
