package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notecache/pkg/core"
)

// setupSymlink creates a file outside the store and a "link" entry in the
// store pointing at it. It returns the path of the outside file.
func setupSymlink(t *testing.T, dir string) string {
	t.Helper()

	secret := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(secret, []byte("outside-the-store"), 0644))
	if err := os.Symlink(secret, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	return secret
}

func TestSymlinksAreNotNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("List Skips Them", func(t *testing.T) {
		repo, dir := setupDiskRepo(t)
		setupSymlink(t, dir)

		notes, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Get Is Not Found", func(t *testing.T) {
		repo, dir := setupDiskRepo(t)
		setupSymlink(t, dir)

		note, err := repo.Get(ctx, "link")
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Empty(t, note.Text)
	})

	t.Run("Update Leaves Target Untouched", func(t *testing.T) {
		repo, dir := setupDiskRepo(t)
		secret := setupSymlink(t, dir)

		err := repo.Update(ctx, core.Note{Name: "link", Text: "overwritten"})
		assert.ErrorIs(t, err, core.ErrNotFound)

		data, err := os.ReadFile(secret)
		require.NoError(t, err)
		assert.Equal(t, "outside-the-store", string(data))

		info, err := os.Lstat(filepath.Join(dir, "link"))
		require.NoError(t, err)
		assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink, "link must stay a symlink")
	})

	t.Run("Delete Keeps Link", func(t *testing.T) {
		repo, dir := setupDiskRepo(t)
		setupSymlink(t, dir)

		err := repo.Delete(ctx, "link")
		assert.ErrorIs(t, err, core.ErrNotFound)

		_, err = os.Lstat(filepath.Join(dir, "link"))
		assert.NoError(t, err)
	})

	t.Run("Create Over Link Already Exists", func(t *testing.T) {
		repo, dir := setupDiskRepo(t)
		secret := setupSymlink(t, dir)

		err := repo.Create(ctx, core.Note{Name: "link", Text: "x"})
		assert.ErrorIs(t, err, core.ErrAlreadyExists)

		data, err := os.ReadFile(secret)
		require.NoError(t, err)
		assert.Equal(t, "outside-the-store", string(data))
	})
}

func TestUpdateReadOnlyFileMode(t *testing.T) {
	repo, dir := setupDiskRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, core.Note{Name: "frozen", Text: "v1"}))
	path := filepath.Join(dir, "frozen")
	require.NoError(t, os.Chmod(path, 0444))

	// The rename only needs a writable directory.
	require.NoError(t, repo.Update(ctx, core.Note{Name: "frozen", Text: "v2"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0444), info.Mode().Perm())
}
