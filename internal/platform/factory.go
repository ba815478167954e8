package platform

import (
	"github.com/aretw0/notecache/pkg/core"
)

// New initializes the store at uri and wraps it in the domain service.
//
//	svc, err := notecache.New("./notes", notecache.WithLogger(logger))
func New(uri string, opts ...Option) (*core.Service, error) {
	// 1. Initialize environment (directories)
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger for wiring
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}
