// internal/queue/memory_test.go
package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/medialicense-backend/internal/models"
)

func job(email string) *models.NotificationJob {
	return &models.NotificationJob{
		ID:    uuid.New(),
		Email: email,
		Event: models.TransitionEvent{LicenseID: uuid.New()},
	}
}

func TestMemoryQueueDeliversEligibleJob(t *testing.T) {
	q := NewMemoryQueue()
	require.NoError(t, q.Enqueue(context.Background(), job("a@example.com"), 0))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, 0, q.Len())
}

func TestMemoryQueueHonorsDelay(t *testing.T) {
	q := NewMemoryQueue()
	require.NoError(t, q.Enqueue(context.Background(), job("a@example.com"), time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, q.Len())
}

func TestMemoryQueueClaimsEarliestEligibleFirst(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, job("later@example.com"), -time.Minute))
	require.NoError(t, q.Enqueue(ctx, job("earlier@example.com"), -time.Hour))

	claimCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	first, err := q.Dequeue(claimCtx)
	require.NoError(t, err)
	assert.Equal(t, "earlier@example.com", first.Email)
}

func TestMemoryQueueDequeueStopsOnCancel(t *testing.T) {
	q := NewMemoryQueue()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := q.Dequeue(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Dequeue did not return after cancellation")
	}
}
