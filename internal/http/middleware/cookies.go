package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cookie names shared by the auth middleware and the auth handlers.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Cookie lifetimes match the token TTLs: 15 minutes and 30 days.
const (
	accessCookieMaxAge  = 15 * 60
	refreshCookieMaxAge = 30 * 24 * 60 * 60
)

// SetAuthCookies writes the token pair as httpOnly cookies. Cross-site
// frontends need SameSite=None, which browsers only accept over HTTPS, so
// None is used in production and Strict everywhere else.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string, production bool) {
	c.SetSameSite(cookieSameSite(production))
	c.SetCookie(AccessTokenCookie, accessToken, accessCookieMaxAge, "/", "", production, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, refreshCookieMaxAge, "/", "", production, true)
}

// ClearAuthCookies expires both cookies.
func ClearAuthCookies(c *gin.Context, production bool) {
	c.SetSameSite(cookieSameSite(production))
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", production, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", production, true)
}

func cookieSameSite(production bool) http.SameSite {
	if production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}
