// internal/queue/memory.go
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/javajoker/medialicense-backend/internal/models"
)

// MemoryQueue is an in-process Queue used in tests and single-binary
// deployments without redis.
type MemoryQueue struct {
	mtx   sync.Mutex
	items []memoryItem
}

type memoryItem struct {
	job        *models.NotificationJob
	eligibleAt time.Time
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job *models.NotificationJob, delay time.Duration) error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.items = append(q.items, memoryItem{job: job, eligibleAt: time.Now().Add(delay)})
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (*models.NotificationJob, error) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if job := q.tryClaim(); job != nil {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (q *MemoryQueue) tryClaim() *models.NotificationJob {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	now := time.Now()
	earliest := -1
	for i, item := range q.items {
		if item.eligibleAt.After(now) {
			continue
		}
		if earliest == -1 || item.eligibleAt.Before(q.items[earliest].eligibleAt) {
			earliest = i
		}
	}
	if earliest == -1 {
		return nil
	}

	job := q.items[earliest].job
	q.items = append(q.items[:earliest], q.items[earliest+1:]...)
	return job
}

// Len reports the number of queued jobs, eligible or not.
func (q *MemoryQueue) Len() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	return len(q.items)
}
