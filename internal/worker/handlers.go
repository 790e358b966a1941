package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/cache"
	"github.com/you/blogsvc/internal/infrastructure/queue"
)

// Handlers consumes the background task types. Both bodies are idempotent:
// optimizing overwrites the derivative and pattern-delete of absent keys is
// a no-op, so at-least-once delivery is safe.
type Handlers struct {
	cache     *cache.RedisCache
	storage   domain.FileStorage
	optimizer domain.ImageOptimizer
	logger    *zap.Logger
}

// NewHandlers creates the worker task handlers.
func NewHandlers(redisCache *cache.RedisCache, storage domain.FileStorage, optimizer domain.ImageOptimizer, logger *zap.Logger) *Handlers {
	return &Handlers{
		cache:     redisCache,
		storage:   storage,
		optimizer: optimizer,
		logger:    logger,
	}
}

// Mux registers the task handlers on an asynq mux.
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeImageOptimize, h.HandleImageOptimize)
	mux.HandleFunc(queue.TypeCacheInvalidate, h.HandleCacheInvalidate)
	return mux
}

// HandleImageOptimize resizes an uploaded original into its webp derivative.
func (h *Handlers) HandleImageOptimize(ctx context.Context, t *asynq.Task) error {
	var job domain.ImageOptimizeJob
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return fmt.Errorf("unmarshal image optimize job: %w", err)
	}

	dst := h.storage.OptimizedPath(job.FileName)
	if err := h.optimizer.Optimize(job.FilePath, dst, job.Width, job.Height, job.Quality); err != nil {
		return fmt.Errorf("optimize %s: %w", job.FileName, err)
	}

	h.logger.Info("image optimized",
		zap.String("file", job.FileName),
		zap.Int("width", job.Width),
		zap.Int("height", job.Height),
		zap.Int("quality", job.Quality))
	return nil
}

// HandleCacheInvalidate drops every cache key matching the job's pattern.
func (h *Handlers) HandleCacheInvalidate(ctx context.Context, t *asynq.Task) error {
	var job domain.CacheInvalidateJob
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return fmt.Errorf("unmarshal cache invalidate job: %w", err)
	}

	deleted, err := h.cache.DeletePattern(ctx, job.Pattern)
	if err != nil {
		return fmt.Errorf("invalidate %s: %w", job.Pattern, err)
	}

	h.logger.Info("cache invalidated", zap.String("pattern", job.Pattern), zap.Int("deleted", deleted))
	return nil
}
