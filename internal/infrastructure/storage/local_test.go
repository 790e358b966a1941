package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root)
	require.NoError(t, err)

	t.Run("creates the storage areas", func(t *testing.T) {
		for _, dir := range []string{"images", "optimize"} {
			info, err := os.Stat(filepath.Join(root, dir))
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		}
	})

	t.Run("paths", func(t *testing.T) {
		assert.Equal(t, filepath.Join(root, "images", "a.jpg"), s.ImagePath("a.jpg"))
		assert.Equal(t, filepath.Join(root, "optimize", "a.webp"), s.OptimizedPath("a.jpg"))
	})

	t.Run("remove deletes the stored file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(s.ImagePath("a.jpg"), []byte("x"), 0o644))
		require.NoError(t, s.Remove("a.jpg"))
		_, err := os.Stat(s.ImagePath("a.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("removing a missing file is not an error", func(t *testing.T) {
		assert.NoError(t, s.Remove("missing.jpg"))
		assert.NoError(t, s.RemoveOptimized("missing.jpg"))
	})
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("photo.JPG")
	b := UniqueName("photo.JPG")

	assert.NotEqual(t, a, b)
	assert.Equal(t, ".jpg", filepath.Ext(a))
	assert.Empty(t, filepath.Ext(UniqueName("noext")))
}

func TestOptimizedName(t *testing.T) {
	assert.Equal(t, "a.webp", OptimizedName("a.jpg"))
	assert.Equal(t, "a.webp", OptimizedName("a.png"))
	assert.Equal(t, "noext.webp", OptimizedName("noext"))
}
