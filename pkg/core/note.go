// Package core holds the domain of notecache: notes, the repository contract
// every storage adapter implements, and the Service that applies the business
// rules on top of it.
package core

// Note is the central entity of the domain.
// It is a named piece of text. The name doubles as the storage key and
// carries no metadata beyond it (no timestamps, no versions, no owner).
type Note struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// EventType represents the type of change observed in a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType
	Name      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Name
}
