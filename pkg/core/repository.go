package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism.
type Repository interface {
	// Get retrieves a note by name.
	Get(ctx context.Context, name string) (Note, error)

	// List returns every note in the store. It is all-or-nothing: a single
	// unreadable note fails the whole call with ErrReadError.
	List(ctx context.Context) ([]Note, error)

	// Create persists a new note. It fails with ErrAlreadyExists if the name is taken.
	Create(ctx context.Context, n Note) error

	// Update replaces the full text of an existing note.
	// It fails with ErrNotFound if the note does not exist.
	Update(ctx context.Context, n Note) error

	// Delete removes a note by name.
	Delete(ctx context.Context, name string) error

	// Initialize ensures the underlying storage is ready (e.g. create the directory).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report changes.
type Watchable interface {
	// Watch emits events for notes whose name matches pattern (empty matches all).
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
