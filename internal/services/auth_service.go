package services

import (
	"context"
	"errors"
	"time"

	"github.com/you/blogsvc/domain"
)

// Three consecutive same-day wrong passwords freeze the account.
const maxLoginErrors = 3

// AuthServiceImpl implements domain.AuthService.
type AuthServiceImpl struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	tokenSvc domain.TokenService
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenSvc domain.TokenService) domain.AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}

// Login implements domain.AuthService. Wrong passwords are counted per local
// calendar day against the user row; the third consecutive failure freezes
// the account. A successful login resets the counter and rotates tokens.
func (s *AuthServiceImpl) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	phone = NormalizePhone(phone)

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}

	if user.Status == domain.StatusFreeze {
		return nil, domain.ErrAccountFrozen
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		sameDate := sameCalendarDate(user.UpdatedAt, time.Now())
		switch {
		case !sameDate:
			user.ErrorLoginCount = 1
		case user.ErrorLoginCount >= maxLoginErrors-1:
			user.Status = domain.StatusFreeze
		default:
			user.ErrorLoginCount++
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidPassword
	}

	user.ErrorLoginCount = 0
	return issueTokens(ctx, s.userRepo, s.tokenSvc, user)
}

// RefreshTokens implements domain.AuthService: the rotation path taken when
// the access token is missing or expired. Any verification failure, including
// a stored token superseded by a later rotation, reads as not authenticated.
func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if claims.UserID == 0 {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if user.Phone != claims.Phone {
		return nil, domain.ErrUnauthenticated
	}
	if user.RefreshToken != refreshToken {
		return nil, domain.ErrUnauthenticated
	}

	return issueTokens(ctx, s.userRepo, s.tokenSvc, user)
}

// Logout implements domain.AuthService: the stored refresh token is cleared
// so the presented pair cannot be used again.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrUnauthenticated
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return domain.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	if user.RefreshToken != refreshToken {
		return domain.ErrUnauthenticated
	}

	user.RefreshToken = ""
	return s.userRepo.Update(ctx, user)
}
