package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/cache"
	"github.com/you/blogsvc/internal/infrastructure/queue"
	"github.com/you/blogsvc/internal/mocks"
)

func newWorkerHandlers(t *testing.T) (*Handlers, *miniredis.Miniredis, *mocks.MockFileStorage, *fakeOptimizer) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	storage := mocks.NewMockFileStorage()
	optimizer := &fakeOptimizer{}
	h := NewHandlers(cache.New(client), storage, optimizer, zap.NewNop())
	return h, mr, storage, optimizer
}

type fakeOptimizer struct {
	calls []optimizeCall
	err   error
}

type optimizeCall struct {
	src, dst               string
	width, height, quality int
}

func (f *fakeOptimizer) Optimize(srcPath, dstPath string, width, height, quality int) error {
	f.calls = append(f.calls, optimizeCall{srcPath, dstPath, width, height, quality})
	return f.err
}

var _ domain.ImageOptimizer = (*fakeOptimizer)(nil)

func TestHandleCacheInvalidate(t *testing.T) {
	h, mr, _, _ := newWorkerHandlers(t)

	for _, key := range []string{"posts:1", "posts:2", "products:1"} {
		require.NoError(t, mr.Set(key, "x"))
	}

	payload, err := json.Marshal(domain.CacheInvalidateJob{Pattern: "posts:*"})
	require.NoError(t, err)

	task := asynq.NewTask(queue.TypeCacheInvalidate, payload)
	require.NoError(t, h.HandleCacheInvalidate(context.Background(), task))

	assert.False(t, mr.Exists("posts:1"))
	assert.False(t, mr.Exists("posts:2"))
	assert.True(t, mr.Exists("products:1"))

	// Retrying the same job is a no-op.
	require.NoError(t, h.HandleCacheInvalidate(context.Background(), task))
}

func TestHandleCacheInvalidateBadPayload(t *testing.T) {
	h, _, _, _ := newWorkerHandlers(t)
	task := asynq.NewTask(queue.TypeCacheInvalidate, []byte("{"))
	assert.Error(t, h.HandleCacheInvalidate(context.Background(), task))
}

func TestHandleImageOptimize(t *testing.T) {
	h, _, _, optimizer := newWorkerHandlers(t)

	job := domain.ImageOptimizeJob{
		FilePath: "/uploads/images/a.jpg",
		FileName: "a.jpg",
		Width:    835,
		Height:   577,
		Quality:  100,
	}
	payload, err := json.Marshal(job)
	require.NoError(t, err)

	task := asynq.NewTask(queue.TypeImageOptimize, payload)
	require.NoError(t, h.HandleImageOptimize(context.Background(), task))

	require.Len(t, optimizer.calls, 1)
	call := optimizer.calls[0]
	assert.Equal(t, "/uploads/images/a.jpg", call.src)
	assert.Equal(t, "/uploads/optimize/a.jpg", call.dst)
	assert.Equal(t, 835, call.width)
	assert.Equal(t, 577, call.height)
	assert.Equal(t, 100, call.quality)
}

func TestHandleImageOptimizeFailureRetries(t *testing.T) {
	h, _, _, optimizer := newWorkerHandlers(t)
	optimizer.err = assert.AnError

	payload, err := json.Marshal(domain.ImageOptimizeJob{FileName: "a.jpg"})
	require.NoError(t, err)

	task := asynq.NewTask(queue.TypeImageOptimize, payload)
	assert.Error(t, h.HandleImageOptimize(context.Background(), task), "errors must surface so asynq retries")
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, time.Second, RetryDelay(0, nil, nil))
	assert.Equal(t, 2*time.Second, RetryDelay(1, nil, nil))
	assert.Equal(t, 4*time.Second, RetryDelay(2, nil, nil))
}
