package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/jas0nkim/pricewatch/internal/repository"
	"github.com/redis/go-redis/v9"
)

const rawDataQueueKey = "pricewatch:rawdata:queue"

// RawDataQueueImpl is the Redis-backed work queue between the crawling
// subsystem and the normalization workers. Payload ids are stored as decimal
// strings.
type RawDataQueueImpl struct {
	client *redis.Client
}

// NewRawDataQueue creates a new instance of RawDataQueueImpl.
func NewRawDataQueue(client *redis.Client) *RawDataQueueImpl {
	return &RawDataQueueImpl{client: client}
}

// Push adds a raw data row id to the left side of the list.
func (q *RawDataQueueImpl) Push(ctx context.Context, rawDataID int64) error {
	return q.client.LPush(ctx, rawDataQueueKey, strconv.FormatInt(rawDataID, 10)).Err()
}

// Pop removes and returns the oldest raw data row id from the right side of
// the list.
func (q *RawDataQueueImpl) Pop(ctx context.Context) (int64, error) {
	value, err := q.client.RPop(ctx, rawDataQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, repository.ErrQueueEmpty
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// Size returns the current queue depth.
func (q *RawDataQueueImpl) Size(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, rawDataQueueKey).Result()
}
