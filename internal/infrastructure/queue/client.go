package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/you/blogsvc/domain"
)

// Task types shared between the enqueuing side and the worker.
const (
	TypeImageOptimize   = "image:optimize"
	TypeCacheInvalidate = "cache:invalidate"
)

// Queue names. Cache invalidation goes to the critical queue so it is
// processed ahead of routine image jobs.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// Jobs run three times in total: the first attempt plus two retries with
// exponential backoff (see worker.RetryDelay).
const maxRetries = 2

// Client implements domain.JobQueue on top of asynq. It is constructed at
// process start and closed on shutdown; there is no ambient singleton.
type Client struct {
	client *asynq.Client
}

// NewClient creates a new job queue client.
func NewClient(addr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}),
	}
}

// Close releases the underlying redis connections.
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueImageOptimize implements domain.JobQueue.
func (c *Client) EnqueueImageOptimize(ctx context.Context, job domain.ImageOptimizeJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal image optimize job: %w", err)
	}

	task := asynq.NewTask(TypeImageOptimize, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(maxRetries),
	)
	if err != nil {
		return fmt.Errorf("enqueue image optimize: %w", err)
	}
	return nil
}

// EnqueueCacheInvalidation implements domain.JobQueue. The task id is derived
// from the current time and the job goes to the critical queue so stale
// entries disappear ahead of routine work.
func (c *Client) EnqueueCacheInvalidation(ctx context.Context, pattern string) error {
	payload, err := json.Marshal(domain.CacheInvalidateJob{Pattern: pattern})
	if err != nil {
		return fmt.Errorf("marshal cache invalidate job: %w", err)
	}

	task := asynq.NewTask(TypeCacheInvalidate, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(maxRetries),
		asynq.TaskID(fmt.Sprintf("invalidate-%d", time.Now().UnixNano())),
	)
	if err != nil {
		return fmt.Errorf("enqueue cache invalidation: %w", err)
	}
	return nil
}

var _ domain.JobQueue = (*Client)(nil)
