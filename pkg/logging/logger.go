// Package logging builds the structured loggers used by the FeatureFinder CLI.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with FeatureFinder field helpers.
type Logger struct {
	*slog.Logger
}

// Options configure a Logger.
type Options struct {
	Level  slog.Level
	Format string    // "text" (default) or "json"
	Output io.Writer // Defaults to stderr
}

// New creates a Logger from options.
func New(opts Options) (*Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	switch strings.ToLower(opts.Format) {
	case "", "text":
		return NewTextLogger(out, opts.Level), nil
	case "json":
		return NewJSONLogger(out, opts.Level), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (expected text or json)", opts.Format)
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NewJSONLogger creates a Logger that outputs JSON logs.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// WithDataset tags the logger with the dataset being processed.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{Logger: l.Logger.With("dataset", name)}
}

// WithRunID tags the logger with a run identifier.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run_id", id)}
}

// RunLog is a log file that receives a copy of every record of a dataset run.
type RunLog struct {
	*Logger
	file *os.File
}

// Tee returns a logger that writes to l and, at the given level and in text
// form, to the file at path. The file is truncated. Close the RunLog when done.
func (l *Logger) Tee(path string, level slog.Level) (*RunLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	fh := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return &RunLog{
		Logger: &Logger{Logger: slog.New(teeHandler{l.Handler(), fh})},
		file:   f,
	}, nil
}

// Close flushes and closes the log file.
func (r *RunLog) Close() error {
	return errors.Join(r.file.Sync(), r.file.Close())
}

// teeHandler fans records out to several handlers.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
