package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authProbe(mw *AuthMW) *gin.Engine {
	r := gin.New()
	r.GET("/probe", mw.WithCookieAuth(), func(c *gin.Context) {
		id, _ := c.Get(ContextUserIDKey)
		c.JSON(http.StatusOK, gin.H{"userID": id})
	})
	return r
}

func probeRequest(cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func TestWithCookieAuth(t *testing.T) {
	t.Run("no refresh cookie", func(t *testing.T) {
		mw := NewAuthMW(mocks.NewMockAuthService(), mocks.NewMockTokenService(), false)
		w := httptest.NewRecorder()
		authProbe(mw).ServeHTTP(w, probeRequest())

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Error_Unauthenticated")
	})

	t.Run("valid access token passes", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.AccessClaims, error) {
			return &domain.AccessClaims{UserID: 42}, nil
		}
		mw := NewAuthMW(mocks.NewMockAuthService(), tokenSvc, false)

		w := httptest.NewRecorder()
		authProbe(mw).ServeHTTP(w, probeRequest(
			&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"},
			&http.Cookie{Name: AccessTokenCookie, Value: "access"},
		))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "42")
	})

	t.Run("missing access cookie rotates silently", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		rotated := false
		authSvc.RefreshTokensFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
			rotated = true
			assert.Equal(t, "refresh", refreshToken)
			return &domain.AuthResult{
				User:         &domain.User{ID: 42},
				AccessToken:  "fresh_access",
				RefreshToken: "fresh_refresh",
			}, nil
		}
		mw := NewAuthMW(authSvc, mocks.NewMockTokenService(), false)

		w := httptest.NewRecorder()
		authProbe(mw).ServeHTTP(w, probeRequest(&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, rotated)

		cookies := w.Result().Cookies()
		byName := map[string]*http.Cookie{}
		for _, ck := range cookies {
			byName[ck.Name] = ck
		}
		require.Contains(t, byName, AccessTokenCookie)
		require.Contains(t, byName, RefreshTokenCookie)
		assert.Equal(t, "fresh_access", byName[AccessTokenCookie].Value)
		assert.Equal(t, "fresh_refresh", byName[RefreshTokenCookie].Value)
		assert.True(t, byName[AccessTokenCookie].HttpOnly)
		assert.Equal(t, "/", byName[AccessTokenCookie].Path)
	})

	t.Run("failed rotation is unauthenticated", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.RefreshTokensFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
			return nil, domain.ErrUnauthenticated
		}
		mw := NewAuthMW(authSvc, mocks.NewMockTokenService(), false)

		w := httptest.NewRecorder()
		authProbe(mw).ServeHTTP(w, probeRequest(&http.Cookie{Name: RefreshTokenCookie, Value: "stale"}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired access token is distinguishable", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.AccessClaims, error) {
			return nil, domain.ErrAccessTokenExpired
		}
		mw := NewAuthMW(mocks.NewMockAuthService(), tokenSvc, false)

		w := httptest.NewRecorder()
		authProbe(mw).ServeHTTP(w, probeRequest(
			&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"},
			&http.Cookie{Name: AccessTokenCookie, Value: "expired"},
		))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Error_AccessTokenExpired")
	})

	t.Run("tampered access token reads as an attack", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.AccessClaims, error) {
			return nil, domain.ErrTokenTampered
		}
		mw := NewAuthMW(mocks.NewMockAuthService(), tokenSvc, false)

		w := httptest.NewRecorder()
		authProbe(mw).ServeHTTP(w, probeRequest(
			&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"},
			&http.Cookie{Name: AccessTokenCookie, Value: "tampered"},
		))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Error_Attack")
	})
}
