package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/blogsvc/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with distinct secrets; the access payload carries only the user
// id, the refresh payload the id plus phone.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT token service.
func NewJWTService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// GenerateAccessToken implements domain.TokenService.
func (j *JWTServiceImpl) GenerateAccessToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(j.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.accessSecret)
}

// GenerateRefreshToken implements domain.TokenService.
func (j *JWTServiceImpl) GenerateRefreshToken(userID uint, phone string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    userID,
		"phone": phone,
		"iat":   now.Unix(),
		"exp":   now.Add(j.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refreshSecret)
}

// ValidateAccessToken implements domain.TokenService.
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.AccessClaims, error) {
	claims, err := j.parse(tokenString, j.accessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrAccessTokenExpired
		}
		return nil, domain.ErrTokenTampered
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, domain.ErrTokenTampered
	}

	return &domain.AccessClaims{UserID: uint(id)}, nil
}

// ValidateRefreshToken implements domain.TokenService. Every failure maps to
// ErrUnauthenticated: a refresh token is either current and valid or the
// session is gone.
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.RefreshClaims, error) {
	claims, err := j.parse(tokenString, j.refreshSecret)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	phone, ok := claims["phone"].(string)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.RefreshClaims{UserID: uint(id), Phone: phone}, nil
}

func (j *JWTServiceImpl) parse(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}
