package services

import (
	"context"
	"fmt"

	"github.com/you/blogsvc/domain"
)

// issueTokens mints a fresh access/refresh pair and persists the refresh
// token on the user row. Only the most recently issued refresh token is
// honored, so issuing here invalidates every other session immediately.
func issueTokens(ctx context.Context, userRepo domain.UserRepository, tokenSvc domain.TokenService, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := tokenSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := tokenSvc.GenerateRefreshToken(user.ID, user.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	user.RefreshToken = refreshToken
	if err := userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
