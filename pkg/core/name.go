package core

import "strings"

// ValidName reports whether name can address a note.
// A name is a single path element: never empty, never "." or "..", and free
// of separators and NUL bytes, so it cannot escape the store directory.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
