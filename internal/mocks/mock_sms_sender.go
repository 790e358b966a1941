package mocks

import (
	"github.com/you/blogsvc/domain"
)

// MockSmsSender implements domain.SmsSender for testing
type MockSmsSender struct {
	SendFunc func(to, message string) error

	// Sent records every delivered message for assertions
	Sent []string
}

// NewMockSmsSender creates a new MockSmsSender with default behaviors
func NewMockSmsSender() *MockSmsSender {
	return &MockSmsSender{}
}

func (m *MockSmsSender) Send(to, message string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, message)
	}
	m.Sent = append(m.Sent, message)
	return nil
}

var _ domain.SmsSender = (*MockSmsSender)(nil)
