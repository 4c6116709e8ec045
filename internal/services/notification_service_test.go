// internal/services/notification_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/queue"
)

// failAfterQueue accepts the first n jobs, then errors.
type failAfterQueue struct {
	*queue.MemoryQueue
	capacity int
	accepted int
}

func (q *failAfterQueue) Enqueue(ctx context.Context, job *models.NotificationJob, delay time.Duration) error {
	if q.accepted >= q.capacity {
		return errors.New("queue unavailable")
	}
	q.accepted++
	return q.MemoryQueue.Enqueue(ctx, job, delay)
}

func TestBuildJobUsesContactEmail(t *testing.T) {
	svc := NewNotificationService(queue.NewMemoryQueue(), testWorkflowConfig(), testEmailConfig())

	license := &models.License{
		ContactPerson: "Dana Reyes",
		ContactEmail:  "dana@rightsholder.example",
	}
	job := svc.BuildJob(license, models.TransitionEvent{NewStatus: models.StatusInReview})

	assert.Equal(t, "dana@rightsholder.example", job.Email)
	assert.Equal(t, "Dana Reyes", job.ContactPerson)
	assert.NotEqual(t, job.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Zero(t, job.Attempts)
}

func TestBuildJobFallsBackWithoutContactEmail(t *testing.T) {
	svc := NewNotificationService(queue.NewMemoryQueue(), testWorkflowConfig(), testEmailConfig())

	job := svc.BuildJob(&models.License{}, models.TransitionEvent{})
	assert.Equal(t, "licensing@example.com", job.Email)
}

func TestEnqueueBulkReportsPerJobOutcomes(t *testing.T) {
	q := &failAfterQueue{MemoryQueue: queue.NewMemoryQueue(), capacity: 2}
	svc := NewNotificationService(q, testWorkflowConfig(), testEmailConfig())

	license := &models.License{ContactEmail: "dana@rightsholder.example"}
	jobs := []*models.NotificationJob{
		svc.BuildJob(license, models.TransitionEvent{NewStatus: models.StatusInReview}),
		svc.BuildJob(license, models.TransitionEvent{NewStatus: models.StatusNegotiating}),
		svc.BuildJob(license, models.TransitionEvent{NewStatus: models.StatusApproved}),
	}

	results := svc.EnqueueBulk(context.Background(), jobs)

	require.Len(t, results, 3)
	assert.NoError(t, results[0])
	assert.NoError(t, results[1])
	assert.Error(t, results[2])
	assert.Equal(t, 2, q.Len())
}
