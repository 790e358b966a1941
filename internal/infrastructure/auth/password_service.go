package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/you/blogsvc/domain"
)

// PasswordServiceImpl implements domain.PasswordHasher. It hashes both user
// passwords and OTP codes; plaintext codes are never stored.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new bcrypt-based hasher.
func NewPasswordService() domain.PasswordHasher {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

// Hash implements domain.PasswordHasher.
func (p *PasswordServiceImpl) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordHasher.
func (p *PasswordServiceImpl) Verify(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
