package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/blogsvc/domain"
)

func TestAccessTokens(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 30*24*time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(42)
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
	})

	t.Run("expired token is distinguishable", func(t *testing.T) {
		expired := NewJWTService("access-secret", "refresh-secret", -time.Minute, time.Hour)
		token, err := expired.GenerateAccessToken(42)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrAccessTokenExpired)
	})

	t.Run("wrong secret reads as tampering", func(t *testing.T) {
		other := NewJWTService("other-secret", "refresh-secret", 15*time.Minute, time.Hour)
		token, err := other.GenerateAccessToken(42)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenTampered)
	})

	t.Run("garbage reads as tampering", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrTokenTampered)
	})
}

func TestRefreshTokens(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 30*24*time.Hour)

	t.Run("round trip carries id and phone", func(t *testing.T) {
		token, err := svc.GenerateRefreshToken(42, "12345678")
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "12345678", claims.Phone)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(42)
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("any failure reads as unauthenticated", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
