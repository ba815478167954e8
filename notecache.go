package notecache

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/aretw0/notecache/internal/platform"
	"github.com/aretw0/notecache/pkg/core"
)

// Version is the release version, overridden at build time via -ldflags.
var Version = "dev"

// --- Configuration ---

// Option defines a functional option for configuring notecache.
type Option = platform.Option

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithListConcurrency bounds how many notes are read in parallel when listing.
func WithListConcurrency(n int) Option {
	return platform.WithListConcurrency(n)
}

// WithWatcherErrorHandler registers a callback for store watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name ("fs" or "mem").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFs overrides the filesystem backing the "fs" adapter.
func WithFs(fsys afero.Fs) Option {
	return platform.WithFs(fsys)
}

// --- Factory ---

// New creates a new notecache Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a store explicitly and returns the bare repository.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}
