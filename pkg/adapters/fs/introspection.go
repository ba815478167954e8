package fs

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path            string `json:"path"`
	ReadOnly        bool   `json:"read_only"`
	MustExist       bool   `json:"must_exist"`
	ListConcurrency int    `json:"list_concurrency"`
	WatcherActive   bool   `json:"watcher_active"`
	LockedNotes     int    `json:"locked_notes"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:            r.Path,
		ReadOnly:        r.config.ReadOnly,
		MustExist:       r.config.MustExist,
		ListConcurrency: r.config.ListConcurrency,
		WatcherActive:   r.watcherActive,
		LockedNotes:     r.locks.Len(),
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
