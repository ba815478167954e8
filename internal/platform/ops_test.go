package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notecache/internal/platform"
	"github.com/aretw0/notecache/pkg/adapters/fs"
	"github.com/aretw0/notecache/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("Creates Directory", func(t *testing.T) {
		storePath := filepath.Join(t.TempDir(), "cache", "notes")

		repo, err := platform.Init(storePath)
		require.NoError(t, err)

		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository")
		assert.Equal(t, storePath, fsRepo.Path)

		info, err := os.Stat(storePath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MustExist Fails if Directory Missing", func(t *testing.T) {
		storePath := filepath.Join(t.TempDir(), "missing")

		_, err := platform.Init(storePath, platform.WithMustExist(true))
		assert.Error(t, err)
	})

	t.Run("ReadOnly Does Not Create Directory", func(t *testing.T) {
		storePath := filepath.Join(t.TempDir(), "missing")

		_, err := platform.Init(storePath, platform.WithReadOnly(true))
		assert.Error(t, err)
		_, statErr := os.Stat(storePath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Fails When Path Is a File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := platform.Init(filepath.Join(file, "sub"))
		assert.Error(t, err)
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := platform.Init(t.TempDir(), platform.WithAdapter("s3"))
		assert.EqualError(t, err, "unknown adapter: s3")
	})

	t.Run("Injected Repository Wins", func(t *testing.T) {
		injected := fs.NewRepository(fs.Config{Path: "/x", Fs: afero.NewMemMapFs()})

		repo, err := platform.Init("ignored", platform.WithRepository(injected))
		require.NoError(t, err)
		assert.Same(t, injected, repo)
	})

	t.Run("Custom Filesystem", func(t *testing.T) {
		mem := afero.NewMemMapFs()

		_, err := platform.Init("/notes", platform.WithFs(mem))
		require.NoError(t, err)

		ok, err := afero.DirExists(mem, "/notes")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestNew(t *testing.T) {
	t.Run("Memory Adapter Round Trip", func(t *testing.T) {
		svc, err := platform.New("/notes", platform.WithAdapter("mem"))
		require.NoError(t, err)
		ctx := context.Background()

		require.NoError(t, svc.CreateNote(ctx, "a", "1"))
		n, err := svc.GetNote(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "1", n.Text)
	})

	t.Run("Disk Adapter Persists Files", func(t *testing.T) {
		dir := t.TempDir()
		svc, err := platform.New(dir, platform.WithListConcurrency(1))
		require.NoError(t, err)

		require.NoError(t, svc.CreateNote(context.Background(), "foo.txt", "hello"))

		raw, err := os.ReadFile(filepath.Join(dir, "foo.txt"))
		require.NoError(t, err)
		assert.Equal(t, "hello", string(raw))
	})

	t.Run("Read Only Service", func(t *testing.T) {
		dir := t.TempDir()
		svc, err := platform.New(dir, platform.WithReadOnly(true))
		require.NoError(t, err)

		err = svc.CreateNote(context.Background(), "a", "1")
		assert.ErrorIs(t, err, core.ErrReadOnly)
	})
}
