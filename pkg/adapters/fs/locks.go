package fs

import "sync"

// nameLocks hands out one mutex per note name. Entries are reference counted
// and dropped once the last holder unlocks, so the map only ever holds names
// with an operation in flight.
type nameLocks struct {
	mu   sync.Mutex
	held map[string]*nameLock
}

type nameLock struct {
	mu   sync.Mutex
	refs int
}

func newNameLocks() *nameLocks {
	return &nameLocks{held: make(map[string]*nameLock)}
}

// lock blocks until name is free and returns the matching unlock function.
func (l *nameLocks) lock(name string) func() {
	l.mu.Lock()
	nl, ok := l.held[name]
	if !ok {
		nl = &nameLock{}
		l.held[name] = nl
	}
	nl.refs++
	l.mu.Unlock()

	nl.mu.Lock()

	return func() {
		nl.mu.Unlock()

		l.mu.Lock()
		nl.refs--
		if nl.refs == 0 {
			delete(l.held, name)
		}
		l.mu.Unlock()
	}
}

// Len returns the number of names with an operation in flight.
func (l *nameLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
