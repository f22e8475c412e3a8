// Package logger provides logging utilities for notifymail.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is the interface for logging in notifymail.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewLogger creates a new logger writing to stdout
// logLevel is the level of logging
// Possible values of logLevel are: "debug", "info", "warn", "error"
// Default value is "info".
func NewLogger(logLevel string) *slog.Logger {
	return NewWriterLogger(logLevel, os.Stdout)
}

// NewWriterLogger creates a text logger writing to w.
func NewWriterLogger(logLevel string, w io.Writer) *slog.Logger {
	logHandler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     parseLevel(logLevel),
		AddSource: false,
	})
	return slog.New(logHandler)
}

// NewFileLogger appends log lines to the file at path. The caller owns the
// returned closer and must close it once logging is over.
func NewFileLogger(logLevel string, path string) (*slog.Logger, io.Closer, error) {
	// #nosec G304 - path is supplied by the operator
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return NewWriterLogger(logLevel, f), f, nil
}

// NoLogger creates a logger that does not log anything.
func NoLogger() *slog.Logger {
	noLogger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	}))
	return noLogger
}

func parseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
