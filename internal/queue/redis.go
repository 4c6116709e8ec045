// internal/queue/redis.go
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/medialicense-backend/internal/models"
)

// RedisQueue is a delayed work queue on a sorted set scored by the job's
// eligible-at time in unix milliseconds. Multiple workers can poll the
// same key; ZREM acts as the claim, so each job is delivered to exactly
// one worker.
type RedisQueue struct {
	client       *redis.Client
	key          string
	pollInterval time.Duration
}

func NewRedisQueue(client *redis.Client, key string, pollInterval time.Duration) *RedisQueue {
	if pollInterval <= 0 {
		pollInterval = 250 * time.Millisecond
	}
	return &RedisQueue{
		client:       client,
		key:          key,
		pollInterval: pollInterval,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job *models.NotificationJob, delay time.Duration) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode notification job: %w", err)
	}

	eligibleAt := time.Now().Add(delay).UnixMilli()
	if err := q.client.ZAdd(ctx, q.key, redis.Z{
		Score:  float64(eligibleAt),
		Member: raw,
	}).Err(); err != nil {
		return fmt.Errorf("failed to enqueue notification job: %w", err)
	}

	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (*models.NotificationJob, error) {
	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()

	for {
		job, ok, err := q.tryClaim(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (q *RedisQueue) tryClaim(ctx context.Context) (*models.NotificationJob, bool, error) {
	now := fmt.Sprintf("%d", time.Now().UnixMilli())
	members, err := q.client.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   now,
		Count: 1,
	}).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to poll notification queue: %w", err)
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	// ZREM is the claim: if another worker removed the member first, the
	// removed count is zero and we poll again.
	removed, err := q.client.ZRem(ctx, q.key, members[0]).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to claim notification job: %w", err)
	}
	if removed == 0 {
		return nil, false, nil
	}

	var job models.NotificationJob
	if err := json.Unmarshal([]byte(members[0]), &job); err != nil {
		// A corrupt member would otherwise wedge the queue; drop it.
		logrus.WithError(err).Error("Dropping undecodable notification job")
		return nil, false, nil
	}

	return &job, true, nil
}
