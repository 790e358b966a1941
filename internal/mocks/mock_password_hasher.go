package mocks

import (
	"github.com/you/blogsvc/domain"
)

// MockPasswordHasher implements domain.PasswordHasher for testing
type MockPasswordHasher struct {
	HashFunc   func(plain string) (string, error)
	VerifyFunc func(hashed, plain string) bool
}

// NewMockPasswordHasher creates a new MockPasswordHasher with default behaviors
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(plain)
	}
	// Default behavior: reversible fake hash
	return "hashed_" + plain, nil
}

func (m *MockPasswordHasher) Verify(hashed, plain string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashed, plain)
	}
	return hashed == "hashed_"+plain
}

var _ domain.PasswordHasher = (*MockPasswordHasher)(nil)
