// Package logger configures the structured loggers used by the engine and by client code.
// Engine internals log through Core(), user layers through Client(). Both share one handler.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Format selects the handler encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures the loggers built by New and SetDefault.
type Options struct {
	// Level is the minimum level that is emitted.
	Level slog.Level
	// Format selects text or JSON output.
	Format Format
	// Output receives the log records. Defaults to os.Stderr.
	Output io.Writer
}

type loggers struct {
	core   *slog.Logger
	client *slog.Logger
}

var current atomic.Pointer[loggers]

func init() {
	current.Store(build(Options{Level: slog.LevelInfo, Format: FormatText}))
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a slog.Level.
//
// Parameters:
//   - name: the case-insensitive level name
//
// Returns:
//   - slog.Level: the parsed level
//   - error: error if the name is unknown
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", name, err)
	}
	return level, nil
}

// New builds a logger from opts without installing it.
//
// Parameters:
//   - opts: level, format and output of the logger
//
// Returns:
//   - *slog.Logger: the configured logger
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(out, handlerOpts))
}

// SetDefault rebuilds the core and client loggers from opts and installs the core logger
// as the process-wide slog default.
//
// Parameters:
//   - opts: level, format and output of the loggers
func SetDefault(opts Options) {
	l := build(opts)
	current.Store(l)
	slog.SetDefault(l.core)
}

// Core returns the logger for engine internals.
//
// Returns:
//   - *slog.Logger: logger tagged scope=core
func Core() *slog.Logger {
	return current.Load().core
}

// Client returns the logger for application code.
//
// Returns:
//   - *slog.Logger: logger tagged scope=app
func Client() *slog.Logger {
	return current.Load().client
}

func build(opts Options) *loggers {
	base := New(opts)
	return &loggers{
		core:   base.With("scope", "core"),
		client: base.With("scope", "app"),
	}
}
