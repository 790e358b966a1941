package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
)

// Context keys set by the middleware chain.
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "currentUser"
)

// AuthMW wraps the collaborators the cookie auth middleware needs.
type AuthMW struct {
	authSvc    domain.AuthService
	tokenSvc   domain.TokenService
	production bool
}

// NewAuthMW creates new auth middleware wrapper.
func NewAuthMW(authSvc domain.AuthService, tokenSvc domain.TokenService, production bool) *AuthMW {
	return &AuthMW{
		authSvc:    authSvc,
		tokenSvc:   tokenSvc,
		production: production,
	}
}

// WithCookieAuth authenticates via the token cookie pair. A missing access
// cookie is not a failure: the refresh token is verified and the pair rotated
// silently, so a browser session outlives the short access TTL. A present but
// invalid access token is rejected; only the expired case may fall back to
// rotation on the client's next call.
func (mw *AuthMW) WithCookieAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie(RefreshTokenCookie)
		if err != nil || refreshToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "not authenticated",
				"code":    "Error_Unauthenticated",
			})
			return
		}

		accessToken, err := c.Cookie(AccessTokenCookie)
		if err != nil || accessToken == "" {
			result, err := mw.authSvc.RefreshTokens(c.Request.Context(), refreshToken)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "not authenticated",
					"code":    "Error_Unauthenticated",
				})
				return
			}
			SetAuthCookies(c, result.AccessToken, result.RefreshToken, mw.production)
			c.Set(ContextUserIDKey, result.User.ID)
			c.Next()
			return
		}

		claims, err := mw.tokenSvc.ValidateAccessToken(accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrAccessTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "access token expired",
					"code":    "Error_AccessTokenExpired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "invalid access token",
				"code":    "Error_Attack",
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
