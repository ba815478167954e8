package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/notecache/pkg/core"
)

// DefaultListConcurrency bounds the parallel file reads of List.
const DefaultListConcurrency = 16

// Repository implements core.Repository on top of a single flat directory.
// Each note is one file: the file name is the note name and the file content
// is the note text.
type Repository struct {
	Path   string
	fs     afero.Fs
	config Config
	locks  *nameLocks

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path            string
	Fs              afero.Fs // Defaults to the OS filesystem.
	MustExist       bool
	ReadOnly        bool
	Logger          *slog.Logger
	ListConcurrency int         // Zero means DefaultListConcurrency.
	EventBuffer     int         // Watch channel size. Zero means 64.
	ErrorHandler    func(error) // Receives watcher runtime errors.
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}
	if config.ListConcurrency <= 0 {
		config.ListConcurrency = DefaultListConcurrency
	}
	return &Repository{
		Path:   config.Path,
		fs:     config.Fs,
		config: config,
		locks:  newNameLocks(),
	}
}

// Initialize prepares the store directory.
// It creates the directory unless the store must already exist or is read-only.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := r.fs.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := r.fs.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	r.debug("store directory ready", "path", r.Path)
	return nil
}

// Get reads a note. Any failure, including the name pointing at a directory
// or a symlink, is reported as core.ErrNotFound.
func (r *Repository) Get(ctx context.Context, name string) (core.Note, error) {
	if !core.ValidName(name) {
		return core.Note{}, fmt.Errorf("%w: invalid name %q", core.ErrNotFound, name)
	}

	fullPath := r.notePath(name)
	if _, err := r.statNote(name); err != nil {
		return core.Note{}, err
	}

	data, err := afero.ReadFile(r.fs, fullPath)
	if err != nil {
		return core.Note{}, fmt.Errorf("%w: %s: %w", core.ErrNotFound, name, err)
	}
	return core.Note{Name: name, Text: string(data)}, nil
}

// List reads every note in the store directory.
//
// Strategy:
//  1. Enumerate the directory, keeping only regular files.
//  2. Skip in-flight temp files left by atomic writes.
//  3. Read the remaining files in parallel (bounded).
//
// A failure at any step aborts the whole listing with core.ErrReadError.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	entries, err := afero.ReadDir(r.fs, r.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrReadError, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		if strings.HasPrefix(e.Name(), TempFilePrefix) {
			continue
		}
		names = append(names, e.Name())
	}

	notes := make([]core.Note, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.ListConcurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := afero.ReadFile(r.fs, r.notePath(name))
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			notes[i] = core.Note{Name: name, Text: string(data)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrReadError, err)
	}
	return notes, nil
}

// Create writes a new note.
//
// The existence check and the write happen under the note's lock, and the
// file is opened with O_EXCL, so concurrent creates of the same name (in this
// process or another) yield exactly one success.
func (r *Repository) Create(ctx context.Context, n core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if !core.ValidName(n.Name) {
		return fmt.Errorf("%w: invalid name %q", core.ErrBadRequest, n.Name)
	}

	unlock := r.locks.lock(n.Name)
	defer unlock()

	fullPath := r.notePath(n.Name)
	if _, err := r.lstat(fullPath); err == nil {
		return fmt.Errorf("%w: %s", core.ErrAlreadyExists, n.Name)
	}

	f, err := r.fs.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return fmt.Errorf("%w: %s", core.ErrAlreadyExists, n.Name)
		}
		return fmt.Errorf("failed to create note %s: %w", n.Name, err)
	}

	if _, err := f.Write([]byte(n.Text)); err != nil {
		f.Close()
		_ = r.fs.Remove(fullPath)
		return fmt.Errorf("failed to write note %s: %w", n.Name, err)
	}
	if err := f.Close(); err != nil {
		_ = r.fs.Remove(fullPath)
		return fmt.Errorf("failed to close note %s: %w", n.Name, err)
	}
	return nil
}

// Update replaces the whole text of an existing note.
// The new content is written atomically, so readers never see a partial file.
func (r *Repository) Update(ctx context.Context, n core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if !core.ValidName(n.Name) {
		return fmt.Errorf("%w: invalid name %q", core.ErrNotFound, n.Name)
	}

	unlock := r.locks.lock(n.Name)
	defer unlock()

	fullPath := r.notePath(n.Name)
	info, err := r.statNote(n.Name)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(r.fs, fullPath, []byte(n.Text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrNotFound, n.Name, err)
	}
	return nil
}

// Delete removes a note. Any failure is reported as core.ErrNotFound.
func (r *Repository) Delete(ctx context.Context, name string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if !core.ValidName(name) {
		return fmt.Errorf("%w: invalid name %q", core.ErrNotFound, name)
	}

	unlock := r.locks.lock(name)
	defer unlock()

	fullPath := r.notePath(name)
	if _, err := r.statNote(name); err != nil {
		return err
	}

	if err := r.fs.Remove(fullPath); err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrNotFound, name, err)
	}
	return nil
}

// statNote returns the file info of a note without following symlinks.
// Only regular files are notes: directories, symlinks and devices are
// reported as core.ErrNotFound, the same way List skips them.
func (r *Repository) statNote(name string) (os.FileInfo, error) {
	info, err := r.lstat(r.notePath(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrNotFound, name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", core.ErrNotFound, name)
	}
	return info, nil
}

// lstat uses Lstat when the filesystem supports it.
func (r *Repository) lstat(path string) (os.FileInfo, error) {
	if lst, ok := r.fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return r.fs.Stat(path)
}

func (r *Repository) notePath(name string) string {
	return filepath.Join(r.Path, name)
}

func (r *Repository) debug(msg string, args ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, args...)
	}
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
