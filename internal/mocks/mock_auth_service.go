package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc         func(ctx context.Context, phone, password string) (*domain.AuthResult, error)
	RefreshTokensFunc func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc        func(ctx context.Context, refreshToken string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, phone, password)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Phone: phone, Role: domain.RoleUser, Status: domain.StatusActive},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
	}, nil
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokensFunc != nil {
		return m.RefreshTokensFunc(ctx, refreshToken)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Role: domain.RoleUser, Status: domain.StatusActive},
		AccessToken:  "rotated_access_token",
		RefreshToken: "rotated_refresh_token",
	}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

var _ domain.AuthService = (*MockAuthService)(nil)
