package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/you/blogsvc/internal/infrastructure/queue"
)

// RetryDelay backs off exponentially from one second: 1s, 2s, 4s, ...
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	return time.Second << uint(n)
}

// NewServer builds the asynq server. The critical queue carries cache
// invalidations and gets twice the weight of the default queue.
func NewServer(addr, password string, db, concurrency int, logger *zap.Logger) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr, Password: password, DB: db},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				queue.QueueCritical: 6,
				queue.QueueDefault:  3,
			},
			RetryDelayFunc: RetryDelay,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)
}
