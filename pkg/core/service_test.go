package core_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/aretw0/notecache/pkg/core"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test fallback/errors.
type MockRepository struct {
	notes map[string]core.Note
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		notes: make(map[string]core.Note),
	}
}

func (m *MockRepository) Get(ctx context.Context, name string) (core.Note, error) {
	n, ok := m.notes[name]
	if !ok {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, name)
	}
	return n, nil
}

func (m *MockRepository) List(ctx context.Context) ([]core.Note, error) {
	notes := make([]core.Note, 0, len(m.notes))
	for _, n := range m.notes {
		notes = append(notes, n)
	}
	// Sort for deterministic tests
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Name < notes[j].Name
	})
	return notes, nil
}

func (m *MockRepository) Create(ctx context.Context, n core.Note) error {
	if _, ok := m.notes[n.Name]; ok {
		return core.ErrAlreadyExists
	}
	m.notes[n.Name] = n
	return nil
}

func (m *MockRepository) Update(ctx context.Context, n core.Note) error {
	if _, ok := m.notes[n.Name]; !ok {
		return core.ErrNotFound
	}
	m.notes[n.Name] = n
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, name string) error {
	if _, ok := m.notes[name]; !ok {
		return core.ErrNotFound
	}
	delete(m.notes, name)
	return nil
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func TestService_CRUD(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo, nil)
	ctx := context.TODO()

	// 1. Create
	if err := service.CreateNote(ctx, "note1", "content1"); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	// 2. Get
	n, err := service.GetNote(ctx, "note1")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if n.Text != "content1" {
		t.Errorf("expected text 'content1', got '%s'", n.Text)
	}

	// 3. Update
	if err := service.UpdateNote(ctx, "note1", "replaced"); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	n, _ = service.GetNote(ctx, "note1")
	if n.Text != "replaced" {
		t.Errorf("expected text 'replaced', got '%s'", n.Text)
	}

	// 4. List
	_ = service.CreateNote(ctx, "note2", "content2")
	notes, err := service.ListNotes(ctx)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("expected 2 notes, got %d", len(notes))
	}

	// 5. Delete
	if err := service.DeleteNote(ctx, "note1"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, err := service.GetNote(ctx, "note1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after deletion, got %v", err)
	}
}

func TestService_CreateValidation(t *testing.T) {
	service := core.NewService(NewMockRepository(), nil)
	ctx := context.TODO()

	cases := []struct {
		name, noteName, text string
	}{
		{"Empty Name", "", "text"},
		{"Empty Text", "name", ""},
		{"Both Empty", "", ""},
		{"Path Traversal", "../escape", "text"},
		{"Dot Name", ".", "text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.CreateNote(ctx, tc.noteName, tc.text)
			if !errors.Is(err, core.ErrBadRequest) {
				t.Errorf("expected ErrBadRequest, got %v", err)
			}
		})
	}
}

func TestService_UpdateAllowsEmptyText(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo, nil)
	ctx := context.TODO()

	_ = service.CreateNote(ctx, "draft", "something")
	if err := service.UpdateNote(ctx, "draft", ""); err != nil {
		t.Fatalf("UpdateNote with empty text failed: %v", err)
	}
	if repo.notes["draft"].Text != "" {
		t.Errorf("expected empty text, got %q", repo.notes["draft"].Text)
	}
}

func TestService_InvalidNamesAreNotFound(t *testing.T) {
	service := core.NewService(NewMockRepository(), nil)
	ctx := context.TODO()

	for _, name := range []string{"", "..", "a/b", "a\\b"} {
		if _, err := service.GetNote(ctx, name); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("GetNote(%q): expected ErrNotFound, got %v", name, err)
		}
		if err := service.UpdateNote(ctx, name, "x"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("UpdateNote(%q): expected ErrNotFound, got %v", name, err)
		}
		if err := service.DeleteNote(ctx, name); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("DeleteNote(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestService_ListNotesMatching(t *testing.T) {
	service := core.NewService(NewMockRepository(), nil)
	ctx := context.TODO()

	for _, name := range []string{"a.txt", "b.txt", "c.md"} {
		if err := service.CreateNote(ctx, name, "x"); err != nil {
			t.Fatalf("CreateNote(%s) failed: %v", name, err)
		}
	}

	t.Run("Filters By Glob", func(t *testing.T) {
		notes, err := service.ListNotesMatching(ctx, "*.txt")
		if err != nil {
			t.Fatalf("ListNotesMatching failed: %v", err)
		}
		if len(notes) != 2 || notes[0].Name != "a.txt" || notes[1].Name != "b.txt" {
			t.Errorf("unexpected match result: %+v", notes)
		}
	})

	t.Run("Empty Pattern Matches All", func(t *testing.T) {
		notes, err := service.ListNotesMatching(ctx, "")
		if err != nil {
			t.Fatalf("ListNotesMatching failed: %v", err)
		}
		if len(notes) != 3 {
			t.Errorf("expected 3 notes, got %d", len(notes))
		}
	})

	t.Run("Rejects Bad Pattern", func(t *testing.T) {
		_, err := service.ListNotesMatching(ctx, "[unclosed")
		if !errors.Is(err, core.ErrBadRequest) {
			t.Errorf("expected ErrBadRequest, got %v", err)
		}
	})
}

func TestService_Watch_Unsupported(t *testing.T) {
	service := core.NewService(NewMockRepository(), nil)

	_, err := service.Watch(context.TODO(), "")
	if err == nil {
		t.Fatal("expected error for non-watchable repo")
	}
	if err.Error() != "repository does not support watching" {
		t.Errorf("unexpected error msg: %v", err)
	}
}

func TestService_State(t *testing.T) {
	service := core.NewService(NewMockRepository(), nil)

	state, ok := service.State().(core.ServiceState)
	if !ok {
		t.Fatalf("unexpected state type %T", service.State())
	}
	if state.RepositoryType != "repository" {
		t.Errorf("expected repository type 'repository', got %q", state.RepositoryType)
	}
	if state.Watchable {
		t.Error("mock repository should not be watchable")
	}
}
