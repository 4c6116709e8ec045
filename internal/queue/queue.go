// internal/queue/queue.go
package queue

import (
	"context"
	"time"

	"github.com/javajoker/medialicense-backend/internal/models"
)

// Queue is the notification work queue boundary. Enqueue returns as soon
// as the job is stored; delay defers the job's first eligibility. Dequeue
// blocks until a job becomes eligible or the context is cancelled, and a
// dequeued job is owned exclusively by the caller.
type Queue interface {
	Enqueue(ctx context.Context, job *models.NotificationJob, delay time.Duration) error
	Dequeue(ctx context.Context) (*models.NotificationJob, error)
}
