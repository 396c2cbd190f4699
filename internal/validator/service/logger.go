package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ConfigureLogging installs the process-wide slog handler: text for local development,
// JSON when jsonOutput is set.
func ConfigureLogging(w io.Writer, level string, jsonOutput bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if jsonOutput {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger provides structured logging for services
type Logger struct {
	requestID string
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) log(level slog.Level, operation, msg string, args ...any) {
	slog.Default().Log(context.Background(), level, msg,
		append([]any{"request_id", l.requestID, "operation", operation}, args...)...)
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.log(slog.LevelError, operation, "operation failed", "error", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.log(slog.LevelError, operation, fmt.Sprintf(format, args...))
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.log(slog.LevelInfo, operation, fmt.Sprintf(format, args...))
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.log(slog.LevelWarn, operation, fmt.Sprintf(format, args...))
}
