package cache_utils

import (
	"context"
	"time"

	"taskflow/internal/cache"

	"github.com/valkey-io/valkey-go"
)

// ValkeyQueueService is a FIFO list queue: LPUSH on enqueue, RPOP on dequeue.
type ValkeyQueueService struct {
	client  valkey.Client
	timeout time.Duration
}

func NewValkeyQueueService() *ValkeyQueueService {
	return &ValkeyQueueService{
		client:  cache.GetCache(),
		timeout: DefaultQueueTimeout,
	}
}

func (q *ValkeyQueueService) Enqueue(queueKey string, item []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	return q.client.Do(ctx, q.client.B().Lpush().Key(queueKey).Element(string(item)).Build()).Error()
}

// DequeueBatch pops up to maxCount items oldest first with a single RPOP.
// An empty queue yields no items and no error.
func (q *ValkeyQueueService) DequeueBatch(queueKey string, maxCount int) ([][]byte, error) {
	if maxCount <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	items, err := q.client.Do(ctx, q.client.B().Rpop().Key(queueKey).Count(int64(maxCount)).Build()).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}

		return nil, err
	}

	results := make([][]byte, 0, len(items))
	for _, item := range items {
		results = append(results, []byte(item))
	}

	return results, nil
}

func (q *ValkeyQueueService) QueueLength(queueKey string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	return q.client.Do(ctx, q.client.B().Llen().Key(queueKey).Build()).AsInt64()
}

func (q *ValkeyQueueService) ClearQueue(queueKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	return q.client.Do(ctx, q.client.B().Del().Key(queueKey).Build()).Error()
}
