package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockProductRepository implements domain.ProductRepository for testing
type MockProductRepository struct {
	CreateFunc            func(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateFunc            func(ctx context.Context, id uint, in domain.ProductInput) (*domain.Product, error)
	DeleteFunc            func(ctx context.Context, id uint) error
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.Product, error)
	FindWithRelationsFunc func(ctx context.Context, id uint) (*domain.Product, error)
	ListCursorFunc        func(ctx context.Context, opts domain.ProductListOptions) ([]domain.ProductSummary, error)
}

// NewMockProductRepository creates a new MockProductRepository with default behaviors
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &domain.Product{ID: 1, Name: in.Name}, nil
}

func (m *MockProductRepository) Update(ctx context.Context, id uint, in domain.ProductInput) (*domain.Product, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return &domain.Product{ID: id, Name: in.Name}, nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrModelNotFound
}

func (m *MockProductRepository) FindWithRelations(ctx context.Context, id uint) (*domain.Product, error) {
	if m.FindWithRelationsFunc != nil {
		return m.FindWithRelationsFunc(ctx, id)
	}
	return nil, domain.ErrModelNotFound
}

func (m *MockProductRepository) ListCursor(ctx context.Context, opts domain.ProductListOptions) ([]domain.ProductSummary, error) {
	if m.ListCursorFunc != nil {
		return m.ListCursorFunc(ctx, opts)
	}
	return nil, nil
}

var _ domain.ProductRepository = (*MockProductRepository)(nil)
