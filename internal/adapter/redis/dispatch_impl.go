package redis

import (
	"context"
	"errors"

	"github.com/jas0nkim/pricewatch/internal/repository"
	"github.com/redis/go-redis/v9"
)

const dispatchQueueKey = "pricewatch:jobs:dispatch"

// DispatchQueueImpl hands scheduled job ids to the external execution layer
// through a Redis list.
type DispatchQueueImpl struct {
	client *redis.Client
}

// NewDispatchQueue creates a new instance of DispatchQueueImpl.
func NewDispatchQueue(client *redis.Client) *DispatchQueueImpl {
	return &DispatchQueueImpl{client: client}
}

// PushJob adds a job id to the left side of the list (acting as a queue).
func (q *DispatchQueueImpl) PushJob(ctx context.Context, jobID string) error {
	return q.client.LPush(ctx, dispatchQueueKey, jobID).Err()
}

// PopJob removes and returns the oldest job id from the right side of the
// list.
func (q *DispatchQueueImpl) PopJob(ctx context.Context) (string, error) {
	jobID, err := q.client.RPop(ctx, dispatchQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrQueueEmpty
	}
	return jobID, err
}
