package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
)

// Service handles the business logic for notes.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new Service.
// A nil logger disables logging.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetNote retrieves a note.
func (s *Service) GetNote(ctx context.Context, name string) (Note, error) {
	if !ValidName(name) {
		return Note{}, fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}
	return s.repo.Get(ctx, name)
}

// ListNotes retrieves all notes.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

// ListNotesMatching retrieves the notes whose name matches a glob pattern.
// An empty pattern matches everything.
func (s *Service) ListNotesMatching(ctx context.Context, pattern string) ([]Note, error) {
	if pattern == "" {
		return s.ListNotes(ctx)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid pattern %q", ErrBadRequest, pattern)
	}

	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]Note, 0, len(notes))
	for _, n := range notes {
		// Pattern was validated above, so Match cannot fail.
		if ok, _ := doublestar.Match(pattern, n.Name); ok {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

// CreateNote creates a note. Both name and text are required.
func (s *Service) CreateNote(ctx context.Context, name, text string) error {
	if name == "" || text == "" {
		return fmt.Errorf("%w: note name and content are required", ErrBadRequest)
	}
	if !ValidName(name) {
		return fmt.Errorf("%w: invalid name %q", ErrBadRequest, name)
	}

	if err := s.repo.Create(ctx, Note{Name: name, Text: text}); err != nil {
		return err
	}
	s.debug("note created", "name", name, "bytes", len(text))
	return nil
}

// UpdateNote replaces the text of an existing note.
// Empty text is accepted: it truncates the note.
func (s *Service) UpdateNote(ctx context.Context, name, text string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}

	if err := s.repo.Update(ctx, Note{Name: name, Text: text}); err != nil {
		return err
	}
	s.debug("note updated", "name", name, "bytes", len(text))
	return nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.debug("note deleted", "name", name)
	return nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Repository exposes the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
