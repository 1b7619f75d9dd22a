package memo

import (
	"log/slog"
	"time"

	"github.com/aretw0/memo/internal/platform"
	"github.com/aretw0/memo/pkg/app"
	"github.com/aretw0/memo/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Theme is a public alias for the display theme.
type Theme = core.Theme

// Controller is a public alias for the widget controller.
type Controller = app.Controller

// --- Configuration ---

// Option defines a functional option for configuring memo.
type Option = platform.Option

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithKV allows injecting a custom storage medium.
func WithKV(kv core.KV) Option {
	return platform.WithKV(kv)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithClock overrides the time source for note ids and timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the store without writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler registers a callback for fs watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the data at path and returns a ready Controller.
func New(path string, opts ...Option) (*Controller, error) {
	return platform.New(path, opts...)
}

// Init opens the storage medium explicitly.
func Init(path string, opts ...Option) (core.KV, error) {
	return platform.Init(path, opts...)
}

// Close releases resources held by a Controller's storage.
func Close(ctrl *Controller) error {
	return platform.Close(ctrl)
}

// Filter returns the notes matching query, ignoring case.
func Filter(notes []Note, query string) []Note {
	return core.Filter(notes, query)
}
