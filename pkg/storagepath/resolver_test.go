package storagepath_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uploadkit/uploadkit/pkg/storagepath"
)

func TestNewRoot(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "uploads")

		root, err := storagepath.NewRoot(dir)
		require.NoError(t, err)

		info, err := os.Stat(root.Dir())
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.True(t, filepath.IsAbs(root.Dir()))
	})

	t.Run("empty dir rejected", func(t *testing.T) {
		t.Parallel()
		_, err := storagepath.NewRoot("")
		assert.ErrorIs(t, err, storagepath.ErrInvalidRoot)
	})

	t.Run("relative dir resolved to absolute", func(t *testing.T) {
		root, err := storagepath.NewRoot(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(root.Dir()))
	})
}

func TestRoot_Join(t *testing.T) {
	t.Parallel()
	root, err := storagepath.NewRoot(t.TempDir())
	require.NoError(t, err)

	t.Run("simple name", func(t *testing.T) {
		t.Parallel()
		abs, err := root.Join("assets/file.png")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root.Dir(), "assets", "file.png"), abs)
	})

	t.Run("root itself", func(t *testing.T) {
		t.Parallel()
		abs, err := root.Join(".")
		require.NoError(t, err)
		assert.Equal(t, root.Dir(), abs)
	})

	t.Run("dot-dot escape rejected", func(t *testing.T) {
		t.Parallel()
		_, err := root.Join("../../etc/passwd")
		assert.ErrorIs(t, err, storagepath.ErrOutsideRoot)
	})

	t.Run("dot-dot inside path rejected when escaping", func(t *testing.T) {
		t.Parallel()
		_, err := root.Join("assets/../../outside")
		assert.ErrorIs(t, err, storagepath.ErrOutsideRoot)
	})

	t.Run("absolute path outside root rejected", func(t *testing.T) {
		t.Parallel()
		// Join treats the input as root-relative, so an "absolute" input
		// is re-rooted rather than escaping.
		abs, err := root.Join("/etc/passwd")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root.Dir(), "etc", "passwd"), abs)
	})

	t.Run("sibling directory with shared prefix rejected", func(t *testing.T) {
		t.Parallel()
		_, err := root.Join("../" + filepath.Base(root.Dir()) + "-evil/x")
		assert.ErrorIs(t, err, storagepath.ErrOutsideRoot)
	})

	t.Run("zero root rejected", func(t *testing.T) {
		t.Parallel()
		var zero storagepath.Root
		_, err := zero.Join("x")
		assert.ErrorIs(t, err, storagepath.ErrInvalidRoot)
	})
}

func TestRoot_ResolveContainer(t *testing.T) {
	t.Parallel()
	root, err := storagepath.NewRoot(t.TempDir())
	require.NoError(t, err)

	t.Run("creates container", func(t *testing.T) {
		t.Parallel()
		dir, err := root.ResolveContainer("assets")
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("idempotent on existing container", func(t *testing.T) {
		t.Parallel()
		first, err := root.ResolveContainer("repeat")
		require.NoError(t, err)
		second, err := root.ResolveContainer("repeat")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("concurrent creation tolerated", func(t *testing.T) {
		t.Parallel()
		done := make(chan error, 16)
		for i := 0; i < 16; i++ {
			go func() {
				_, err := root.ResolveContainer("race")
				done <- err
			}()
		}
		for i := 0; i < 16; i++ {
			assert.NoError(t, <-done)
		}
	})

	t.Run("escaping container rejected", func(t *testing.T) {
		t.Parallel()
		_, err := root.ResolveContainer("../escape")
		assert.ErrorIs(t, err, storagepath.ErrOutsideRoot)
	})
}

func TestRoot_Rel(t *testing.T) {
	t.Parallel()
	root, err := storagepath.NewRoot(t.TempDir())
	require.NoError(t, err)

	abs, err := root.Join("assets/a.png")
	require.NoError(t, err)

	rel, err := root.Rel(abs)
	require.NoError(t, err)
	assert.Equal(t, "assets/a.png", rel)

	_, err = root.Rel("/definitely/elsewhere")
	assert.ErrorIs(t, err, storagepath.ErrOutsideRoot)
}
