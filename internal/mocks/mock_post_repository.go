package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockPostRepository implements domain.PostRepository for testing
type MockPostRepository struct {
	CreateFunc            func(ctx context.Context, in domain.PostInput) (*domain.Post, error)
	UpdateFunc            func(ctx context.Context, id uint, in domain.PostInput) (*domain.Post, error)
	DeleteFunc            func(ctx context.Context, id uint) error
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.Post, error)
	FindWithRelationsFunc func(ctx context.Context, id uint) (*domain.Post, error)
	ListOffsetFunc        func(ctx context.Context, opts domain.PostListOptions) ([]domain.PostSummary, error)
	ListCursorFunc        func(ctx context.Context, opts domain.PostListOptions) ([]domain.PostSummary, error)
}

// NewMockPostRepository creates a new MockPostRepository with default behaviors
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{}
}

func (m *MockPostRepository) Create(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &domain.Post{ID: 1, Title: in.Title, Image: in.Image, AuthorID: in.AuthorID}, nil
}

func (m *MockPostRepository) Update(ctx context.Context, id uint, in domain.PostInput) (*domain.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return &domain.Post{ID: id, Title: in.Title, Image: in.Image, AuthorID: in.AuthorID}, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrModelNotFound
}

func (m *MockPostRepository) FindWithRelations(ctx context.Context, id uint) (*domain.Post, error) {
	if m.FindWithRelationsFunc != nil {
		return m.FindWithRelationsFunc(ctx, id)
	}
	return nil, domain.ErrModelNotFound
}

func (m *MockPostRepository) ListOffset(ctx context.Context, opts domain.PostListOptions) ([]domain.PostSummary, error) {
	if m.ListOffsetFunc != nil {
		return m.ListOffsetFunc(ctx, opts)
	}
	return nil, nil
}

func (m *MockPostRepository) ListCursor(ctx context.Context, opts domain.PostListOptions) ([]domain.PostSummary, error) {
	if m.ListCursorFunc != nil {
		return m.ListCursorFunc(ctx, opts)
	}
	return nil, nil
}

var _ domain.PostRepository = (*MockPostRepository)(nil)
