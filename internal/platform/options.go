package platform

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/aretw0/notecache/pkg/core"
)

// options holds the internal configuration for the notecache service.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	fs         afero.Fs
	config     map[string]interface{}
}

// Option defines a functional option for configuring notecache.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		repository: nil,
		logger:     nil,
		adapter:    "fs",
		config:     make(map[string]interface{}),
	}
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Write operations (Create, Update, Delete) return core.ErrReadOnly.
// 2. The store directory is never created; it must already exist.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithListConcurrency bounds how many notes List reads in parallel.
// Zero means the adapter default.
func WithListConcurrency(n int) Option {
	return func(o *options) {
		o.config["list_concurrency"] = n
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name.
// "fs" (default) stores notes on disk, "mem" keeps them in memory for the
// lifetime of the process.
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFs overrides the filesystem used by the "fs" adapter.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		o.fs = fsys
	}
}
