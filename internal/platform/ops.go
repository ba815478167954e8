package platform

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/aretw0/notecache/pkg/adapters/fs"
	"github.com/aretw0/notecache/pkg/core"
)

// Init initializes a note store based on the provided configuration.
// The 'uri' argument is adapter-specific (a directory path for 'fs' and 'mem').
//
// It returns the configured core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on Adapter
	var repo core.Repository
	switch o.adapter {
	case "fs":
		repo = initFS(uri, o)
	case "mem":
		o.fs = afero.NewMemMapFs()
		repo = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS builds the filesystem adapter from the parsed options.
func initFS(path string, o *options) core.Repository {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	listConcurrency, _ := o.config["list_concurrency"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	if o.logger != nil {
		o.logger.Debug("opening note store", "path", path, "adapter", o.adapter, "read_only", readOnly)
	}

	return fs.NewRepository(fs.Config{
		Path:            path,
		Fs:              o.fs,
		MustExist:       mustExist,
		ReadOnly:        readOnly,
		Logger:          o.logger,
		ListConcurrency: listConcurrency,
		ErrorHandler:    errorHandler,
	})
}
