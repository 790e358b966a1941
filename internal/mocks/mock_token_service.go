package mocks

import (
	"github.com/you/blogsvc/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint) (string, error)
	GenerateRefreshTokenFunc func(userID uint, phone string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.AccessClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.RefreshClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GenerateAccessToken(userID uint) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID)
	}
	return "mock_access_token", nil
}

func (m *MockTokenService) GenerateRefreshToken(userID uint, phone string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, phone)
	}
	return "mock_refresh_token", nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.AccessClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return &domain.AccessClaims{UserID: 1}, nil
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.RefreshClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return &domain.RefreshClaims{UserID: 1}, nil
}

var _ domain.TokenService = (*MockTokenService)(nil)
