// Package log provides the structured logger used across turbo-migrate.
//
// It wraps log/slog with a small configuration surface (level, format,
// output) and knows how to attach coded migration errors as attributes.
package log

import (
	"io"
	"log/slog"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog *slog.Logger
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	out := config.Output
	if out == nil {
		out = io.Discard
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	return &Logger{slog: slog.New(handler)}
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return New(Config{Level: LevelError, Format: FormatText, Output: io.Discard})
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// WithError adds error details to the logger.
// Coded migration errors contribute error_code and suggestions.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With(errorAttrs(err)...)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// LogError logs err with full details at error level.
func (l *Logger) LogError(msg string, err error) {
	if err == nil {
		return
	}
	l.slog.Error(msg, errorAttrs(err)...)
}

func errorAttrs(err error) []any {
	me, ok := err.(*errors.MigrateError)
	if !ok {
		return []any{"error", err.Error()}
	}

	args := []any{
		"error_code", string(me.Code),
		"error", me.Message,
	}
	if len(me.Suggestions) > 0 {
		args = append(args, "suggestions", me.Suggestions)
	}
	if me.Cause != nil {
		args = append(args, "cause", me.Cause.Error())
	}
	return args
}
