package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
)

// errorStatus maps a domain sentinel to its HTTP status and wire code.
type errorStatus struct {
	err    error
	status int
	code   string
}

var errorStatuses = []errorStatus{
	{domain.ErrAlreadyRegistered, http.StatusConflict, "Error_AlreadyExist"},
	{domain.ErrNotRegistered, http.StatusUnauthorized, "Error_Unauthenticated"},
	{domain.ErrOtpNotFound, http.StatusNotFound, "Error_NotFound"},
	{domain.ErrOtpRequestLimit, http.StatusMethodNotAllowed, "Error_OverLimit"},
	{domain.ErrOtpLocked, http.StatusUnauthorized, "Error_OverLimit"},
	{domain.ErrOtpFlowLocked, http.StatusBadRequest, "Error_OverLimit"},
	{domain.ErrOtpExpired, http.StatusForbidden, "Error_Expired"},
	{domain.ErrInvalidOtp, http.StatusBadRequest, "Error_Invalid"},
	{domain.ErrInvalidToken, http.StatusBadRequest, "Error_Attack"},
	{domain.ErrInvalidPassword, http.StatusBadRequest, "Error_Invalid"},
	{domain.ErrAccountFrozen, http.StatusUnauthorized, "Error_Freeze"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Error_Unauthenticated"},
	{domain.ErrAccessTokenExpired, http.StatusUnauthorized, "Error_AccessTokenExpired"},
	{domain.ErrTokenTampered, http.StatusBadRequest, "Error_Attack"},
	{domain.ErrForbidden, http.StatusForbidden, "Error_Unauthorised"},
	{domain.ErrUserNotFound, http.StatusNotFound, "Error_NotFound"},
	{domain.ErrModelNotFound, http.StatusNotFound, "Error_NotFound"},
	{domain.ErrFileMissing, http.StatusBadRequest, "Error_Invalid"},
	{domain.ErrMaintenance, http.StatusServiceUnavailable, "Error_Maintenance"},
}

// respondError writes the taxonomy response for a service error. Anything
// outside the taxonomy is an internal failure and stays opaque to the client.
func respondError(c *gin.Context, err error) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"message": m.err.Error(), "code": m.code})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "internal server error",
		"code":    "Error_Internal",
	})
}

// respondInvalid writes a request validation failure.
func respondInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "code": "Error_Invalid"})
}
