package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockSettingRepository implements domain.SettingRepository for testing
type MockSettingRepository struct {
	GetFunc    func(ctx context.Context, key string) (*domain.Setting, error)
	UpsertFunc func(ctx context.Context, key, value string) error
}

// NewMockSettingRepository creates a new MockSettingRepository with default behaviors
func NewMockSettingRepository() *MockSettingRepository {
	return &MockSettingRepository{}
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, domain.ErrModelNotFound
}

func (m *MockSettingRepository) Upsert(ctx context.Context, key, value string) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, key, value)
	}
	return nil
}

var _ domain.SettingRepository = (*MockSettingRepository)(nil)
