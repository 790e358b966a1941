package mocks

import (
	"context"
	"encoding/json"

	"github.com/you/blogsvc/domain"
)

// MockCache implements domain.Cache for testing. The default behavior always
// misses and round-trips the loader result through JSON, mirroring the real
// implementation's shape.
type MockCache struct {
	GetOrSetFunc func(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error

	// Keys records every lookup for assertions
	Keys []string
}

// NewMockCache creates a new MockCache with default behaviors
func NewMockCache() *MockCache {
	return &MockCache{}
}

func (m *MockCache) GetOrSet(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	m.Keys = append(m.Keys, key)
	if m.GetOrSetFunc != nil {
		return m.GetOrSetFunc(ctx, key, dest, loader)
	}
	fresh, err := loader(ctx)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(fresh)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, dest)
}

var _ domain.Cache = (*MockCache)(nil)
