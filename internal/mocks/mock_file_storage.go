package mocks

import (
	"github.com/you/blogsvc/domain"
)

// MockFileStorage implements domain.FileStorage for testing
type MockFileStorage struct {
	ImagePathFunc       func(name string) string
	OptimizedPathFunc   func(name string) string
	RemoveFunc          func(name string) error
	RemoveOptimizedFunc func(name string) error

	// Removed records deletions for assertions
	Removed          []string
	RemovedOptimized []string
}

// NewMockFileStorage creates a new MockFileStorage with default behaviors
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{}
}

func (m *MockFileStorage) ImagePath(name string) string {
	if m.ImagePathFunc != nil {
		return m.ImagePathFunc(name)
	}
	return "/uploads/images/" + name
}

func (m *MockFileStorage) OptimizedPath(name string) string {
	if m.OptimizedPathFunc != nil {
		return m.OptimizedPathFunc(name)
	}
	return "/uploads/optimize/" + name
}

func (m *MockFileStorage) Remove(name string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	m.Removed = append(m.Removed, name)
	return nil
}

func (m *MockFileStorage) RemoveOptimized(name string) error {
	if m.RemoveOptimizedFunc != nil {
		return m.RemoveOptimizedFunc(name)
	}
	m.RemovedOptimized = append(m.RemovedOptimized, name)
	return nil
}

var _ domain.FileStorage = (*MockFileStorage)(nil)
