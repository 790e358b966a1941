package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/middleware"
)

// AuthHandlers handles the registration, reset and session endpoints.
type AuthHandlers struct {
	otpSvc     domain.OtpService
	authSvc    domain.AuthService
	production bool
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(otpSvc domain.OtpService, authSvc domain.AuthService, production bool) *AuthHandlers {
	return &AuthHandlers{
		otpSvc:     otpSvc,
		authSvc:    authSvc,
		production: production,
	}
}

// RegisterRequest starts the OTP flow for a new phone.
type RegisterRequest struct {
	Phone string `json:"phone" binding:"required,numeric,min=5,max=12"`
}

// VerifyOtpRequest carries the code plus the remember token from the
// request step.
type VerifyOtpRequest struct {
	Phone string `json:"phone" binding:"required,numeric,min=5,max=12"`
	Otp   string `json:"otp" binding:"required,numeric,len=6"`
	Token string `json:"token" binding:"required"`
}

// ConfirmPasswordRequest finishes the flow with the verify token.
type ConfirmPasswordRequest struct {
	Phone    string `json:"phone" binding:"required,numeric,min=5,max=12"`
	Password string `json:"password" binding:"required,numeric,len=8"`
	Token    string `json:"token" binding:"required"`
}

// LoginRequest represents a password login.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,numeric,min=5,max=12"`
	Password string `json:"password" binding:"required,numeric,len=8"`
}

// Register handles POST /auth/register.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	result, err := h.otpSvc.RequestOtp(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "otp sent", "data": result})
}

// VerifyOtp handles POST /auth/verify-otp.
func (h *AuthHandlers) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	result, err := h.otpSvc.VerifyOtp(c.Request.Context(), req.Phone, req.Otp, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "otp verified", "data": result})
}

// ConfirmPassword handles POST /auth/confirm: the account is created and the
// session cookies set in one step.
func (h *AuthHandlers) ConfirmPassword(c *gin.Context) {
	var req ConfirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	result, err := h.otpSvc.ConfirmPassword(c.Request.Context(), req.Phone, req.Password, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookies(c, result.AccessToken, result.RefreshToken, h.production)
	c.JSON(http.StatusCreated, gin.H{"message": "registered", "user": result.User})
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookies(c, result.AccessToken, result.RefreshToken, h.production)
	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": result.User})
}

// Logout handles POST /auth/logout: the stored refresh token is revoked and
// both cookies cleared.
func (h *AuthHandlers) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), refreshToken); err != nil {
		respondError(c, err)
		return
	}

	middleware.ClearAuthCookies(c, h.production)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ForgetPassword handles POST /auth/forget-password: same OTP cycle as
// registration but for an existing account.
func (h *AuthHandlers) ForgetPassword(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	result, err := h.otpSvc.ForgetPassword(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "otp sent", "data": result})
}

// VerifyResetOtp handles POST /auth/verify.
func (h *AuthHandlers) VerifyResetOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	result, err := h.otpSvc.VerifyResetOtp(c.Request.Context(), req.Phone, req.Otp, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "otp verified", "data": result})
}

// ResetPassword handles POST /auth/reset-password. Success logs the account
// in with fresh cookies, which also ends every other session.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ConfirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	result, err := h.otpSvc.ResetPassword(c.Request.Context(), req.Phone, req.Password, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookies(c, result.AccessToken, result.RefreshToken, h.production)
	c.JSON(http.StatusOK, gin.H{"message": "password reset", "user": result.User})
}
