package core

import "errors"

// Error kinds. Adapters wrap the underlying cause together with exactly one
// of these, so callers only ever switch on errors.Is.
var (
	// ErrBadRequest means required input was missing or malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound means the target note is absent or could not be reached.
	// Permission and I/O failures on a single note collapse into it.
	ErrNotFound = errors.New("note not found")
	// ErrAlreadyExists is returned by Create on a name collision.
	ErrAlreadyExists = errors.New("note already exists")
	// ErrReadError means the store could not be enumerated or read as a whole.
	ErrReadError = errors.New("error reading notes")
	// ErrReadOnly is returned by mutations on a read-only store.
	ErrReadOnly = errors.New("repository is in read-only mode")
)
