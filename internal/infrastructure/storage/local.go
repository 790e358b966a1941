package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/you/blogsvc/domain"
)

// LocalStorage implements domain.FileStorage on the local filesystem:
// uploaded originals under <root>/images, optimized derivatives under
// <root>/optimize.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates the storage areas if they do not exist yet.
func NewLocalStorage(root string) (*LocalStorage, error) {
	for _, dir := range []string{filepath.Join(root, "images"), filepath.Join(root, "optimize")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return &LocalStorage{root: root}, nil
}

// ImagePath implements domain.FileStorage.
func (s *LocalStorage) ImagePath(name string) string {
	return filepath.Join(s.root, "images", name)
}

// OptimizedPath implements domain.FileStorage. The derivative keeps the
// stored base name with a webp extension.
func (s *LocalStorage) OptimizedPath(name string) string {
	return filepath.Join(s.root, "optimize", OptimizedName(name))
}

// Remove implements domain.FileStorage. A missing file is not an error.
func (s *LocalStorage) Remove(name string) error {
	return removeIfExists(s.ImagePath(name))
}

// RemoveOptimized implements domain.FileStorage.
func (s *LocalStorage) RemoveOptimized(name string) error {
	return removeIfExists(s.OptimizedPath(name))
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UniqueName builds a collision-free stored file name that keeps the
// original extension.
func UniqueName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.NewString(), ext)
}

// OptimizedName derives the webp derivative name from a stored file name.
func OptimizedName(storedName string) string {
	base := strings.TrimSuffix(storedName, filepath.Ext(storedName))
	return base + ".webp"
}

var _ domain.FileStorage = (*LocalStorage)(nil)
