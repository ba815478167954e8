package fs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/aretw0/notecache/pkg/core"
)

const defaultEventBuffer = 64

// Watch observes the store directory and emits an event per note change.
// Only notes whose name matches pattern are reported (empty matches all).
// The returned channel is closed once ctx is cancelled.
//
// Watching needs the real filesystem: fsnotify cannot observe in-memory stores.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if _, ok := r.fs.(*afero.OsFs); !ok {
		return nil, errors.New("watch requires an OS-backed filesystem")
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid pattern %q", core.ErrBadRequest, pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}

	size := r.config.EventBuffer
	if size <= 0 {
		size = defaultEventBuffer
	}
	events := make(chan core.Event, size)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, pattern, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.handleWatchError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

// watchLoop is the select loop that turns fsnotify events into note events.
func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pattern string, events chan<- core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}

			e, ok := r.mapEvent(event, pattern)
			if !ok {
				continue
			}
			r.debug("store event", "type", e.Type, "name", e.Name)

			select {
			case events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			r.handleWatchError(wErr)
		}
	}
}

// mapEvent converts a raw fsnotify event. It returns false for events that
// do not concern a note: chmod, temp files, nested paths or pattern misses.
func (r *Repository) mapEvent(event fsnotify.Event, pattern string) (core.Event, bool) {
	if filepath.Dir(event.Name) != filepath.Clean(r.Path) {
		return core.Event{}, false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) {
		return core.Event{}, false
	}
	if pattern != "" {
		if ok, _ := doublestar.Match(pattern, name); !ok {
			return core.Event{}, false
		}
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      eType,
		Name:      name,
		Timestamp: time.Now().Unix(),
	}, true
}

func (r *Repository) handleWatchError(err error) {
	if r.config.Logger != nil {
		r.config.Logger.Error("fsnotify error", "error", err)
	}
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
