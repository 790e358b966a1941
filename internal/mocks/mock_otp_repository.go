package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockOtpRepository implements domain.OtpRepository for testing
type MockOtpRepository struct {
	CreateFunc      func(ctx context.Context, otp *domain.OtpRequest) error
	FindByPhoneFunc func(ctx context.Context, phone string) (*domain.OtpRequest, error)
	UpdateFunc      func(ctx context.Context, otp *domain.OtpRequest) error
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

func (m *MockOtpRepository) Create(ctx context.Context, otp *domain.OtpRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	return nil
}

func (m *MockOtpRepository) FindByPhone(ctx context.Context, phone string) (*domain.OtpRequest, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: no row yet
	return nil, domain.ErrOtpNotFound
}

func (m *MockOtpRepository) Update(ctx context.Context, otp *domain.OtpRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, otp)
	}
	return nil
}

var _ domain.OtpRepository = (*MockOtpRepository)(nil)
