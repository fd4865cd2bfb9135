package vmarena

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arena-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithWorker adds a worker field to the logger.
func (l *Logger) WithWorker(worker int) *Logger {
	return &Logger{
		Logger: l.Logger.With("worker", worker),
	}
}

// LogReserve logs the outcome of an arena construction.
func (l *Logger) LogReserve(reserveSize, commitSize int, err error) {
	if err != nil {
		l.Error("arena reserve failed",
			"reserve_size", reserveSize,
			"commit_size", commitSize,
			"error", err,
		)
	} else {
		l.Debug("arena reserved",
			"reserve_size", reserveSize,
			"commit_size", commitSize,
		)
	}
}

// LogCommit logs a commit of [offset, offset+size).
func (l *Logger) LogCommit(offset, size int, err error) {
	if err != nil {
		l.Warn("arena commit failed",
			"offset", offset,
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("arena commit completed",
			"offset", offset,
			"size", size,
		)
	}
}

// LogRollback logs a cursor rollback.
func (l *Logger) LogRollback(from, to int, err error) {
	if err != nil {
		l.Error("arena rollback rejected",
			"pos", from,
			"target", to,
			"error", err,
		)
	} else {
		l.Debug("arena rolled back",
			"pos", from,
			"target", to,
			"discarded", from-to,
		)
	}
}

// LogClose logs the release of an arena reservation.
func (l *Logger) LogClose(stats Stats, err error) {
	if err != nil {
		l.Error("arena release failed",
			"reserved", stats.ReserveSize,
			"error", err,
		)
	} else {
		l.Debug("arena released",
			"reserved", stats.ReserveSize,
			"committed", stats.Committed,
			"peak", stats.Peak,
			"commits", stats.Commits,
		)
	}
}
