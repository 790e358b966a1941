package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockOtpService implements domain.OtpService for testing
type MockOtpService struct {
	RequestOtpFunc      func(ctx context.Context, phone string) (*domain.OtpResult, error)
	VerifyOtpFunc       func(ctx context.Context, phone, code, rememberToken string) (*domain.OtpResult, error)
	ConfirmPasswordFunc func(ctx context.Context, phone, password, verifyToken string) (*domain.AuthResult, error)
	ForgetPasswordFunc  func(ctx context.Context, phone string) (*domain.OtpResult, error)
	VerifyResetOtpFunc  func(ctx context.Context, phone, code, rememberToken string) (*domain.OtpResult, error)
	ResetPasswordFunc   func(ctx context.Context, phone, password, verifyToken string) (*domain.AuthResult, error)
}

// NewMockOtpService creates a new MockOtpService with default behaviors
func NewMockOtpService() *MockOtpService {
	return &MockOtpService{}
}

func (m *MockOtpService) RequestOtp(ctx context.Context, phone string) (*domain.OtpResult, error) {
	if m.RequestOtpFunc != nil {
		return m.RequestOtpFunc(ctx, phone)
	}
	return &domain.OtpResult{Phone: phone, Token: "mock_remember_token"}, nil
}

func (m *MockOtpService) VerifyOtp(ctx context.Context, phone, code, rememberToken string) (*domain.OtpResult, error) {
	if m.VerifyOtpFunc != nil {
		return m.VerifyOtpFunc(ctx, phone, code, rememberToken)
	}
	return &domain.OtpResult{Phone: phone, Token: "mock_verify_token"}, nil
}

func (m *MockOtpService) ConfirmPassword(ctx context.Context, phone, password, verifyToken string) (*domain.AuthResult, error) {
	if m.ConfirmPasswordFunc != nil {
		return m.ConfirmPasswordFunc(ctx, phone, password, verifyToken)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Phone: phone, Role: domain.RoleUser, Status: domain.StatusActive},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
	}, nil
}

func (m *MockOtpService) ForgetPassword(ctx context.Context, phone string) (*domain.OtpResult, error) {
	if m.ForgetPasswordFunc != nil {
		return m.ForgetPasswordFunc(ctx, phone)
	}
	return &domain.OtpResult{Phone: phone, Token: "mock_remember_token"}, nil
}

func (m *MockOtpService) VerifyResetOtp(ctx context.Context, phone, code, rememberToken string) (*domain.OtpResult, error) {
	if m.VerifyResetOtpFunc != nil {
		return m.VerifyResetOtpFunc(ctx, phone, code, rememberToken)
	}
	return &domain.OtpResult{Phone: phone, Token: "mock_verify_token"}, nil
}

func (m *MockOtpService) ResetPassword(ctx context.Context, phone, password, verifyToken string) (*domain.AuthResult, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, phone, password, verifyToken)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Phone: phone, Role: domain.RoleUser, Status: domain.StatusActive},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
	}, nil
}

var _ domain.OtpService = (*MockOtpService)(nil)
