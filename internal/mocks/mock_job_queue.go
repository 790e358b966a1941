package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockJobQueue implements domain.JobQueue for testing
type MockJobQueue struct {
	EnqueueImageOptimizeFunc     func(ctx context.Context, job domain.ImageOptimizeJob) error
	EnqueueCacheInvalidationFunc func(ctx context.Context, pattern string) error

	// Recorded jobs for assertions
	OptimizeJobs []domain.ImageOptimizeJob
	Invalidated  []string
}

// NewMockJobQueue creates a new MockJobQueue with default behaviors
func NewMockJobQueue() *MockJobQueue {
	return &MockJobQueue{}
}

func (m *MockJobQueue) EnqueueImageOptimize(ctx context.Context, job domain.ImageOptimizeJob) error {
	if m.EnqueueImageOptimizeFunc != nil {
		return m.EnqueueImageOptimizeFunc(ctx, job)
	}
	m.OptimizeJobs = append(m.OptimizeJobs, job)
	return nil
}

func (m *MockJobQueue) EnqueueCacheInvalidation(ctx context.Context, pattern string) error {
	if m.EnqueueCacheInvalidationFunc != nil {
		return m.EnqueueCacheInvalidationFunc(ctx, pattern)
	}
	m.Invalidated = append(m.Invalidated, pattern)
	return nil
}

var _ domain.JobQueue = (*MockJobQueue)(nil)
