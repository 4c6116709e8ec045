// internal/broadcast/broadcaster_test.go
package broadcast

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/medialicense-backend/internal/models"
)

func event(trackID, movieID uuid.UUID, status models.LicensingStatus) models.TransitionEvent {
	return models.TransitionEvent{
		LicenseID: uuid.New(),
		TrackID:   trackID,
		MovieID:   movieID,
		OldStatus: models.StatusPending,
		NewStatus: status,
	}
}

func TestGlobalSubscriberReceivesEverything(t *testing.T) {
	b := New(4)
	sub := b.Subscribe(Filter{})
	defer sub.Close()

	b.Publish(event(uuid.New(), uuid.New(), models.StatusInReview))
	b.Publish(event(uuid.New(), uuid.New(), models.StatusRejected))

	assert.Equal(t, models.StatusInReview, (<-sub.C).NewStatus)
	assert.Equal(t, models.StatusRejected, (<-sub.C).NewStatus)
}

func TestTrackFilterScopesDelivery(t *testing.T) {
	b := New(4)
	trackID := uuid.New()

	scoped := b.Subscribe(Filter{TrackID: &trackID})
	defer scoped.Close()
	other := b.Subscribe(Filter{TrackID: ptrUUID(uuid.New())})
	defer other.Close()

	b.Publish(event(trackID, uuid.New(), models.StatusInReview))

	require.Len(t, scoped.C, 1)
	assert.Equal(t, trackID, (<-scoped.C).TrackID)
	assert.Empty(t, other.C)
}

func TestMovieFilterScopesDelivery(t *testing.T) {
	b := New(4)
	movieID := uuid.New()

	scoped := b.Subscribe(Filter{MovieID: &movieID})
	defer scoped.Close()

	b.Publish(event(uuid.New(), movieID, models.StatusApproved))
	b.Publish(event(uuid.New(), uuid.New(), models.StatusApproved))

	require.Len(t, scoped.C, 1)
	assert.Equal(t, movieID, (<-scoped.C).MovieID)
}

func TestStatusFilterScopesDelivery(t *testing.T) {
	b := New(4)
	approved := models.StatusApproved

	scoped := b.Subscribe(Filter{Status: &approved})
	defer scoped.Close()

	b.Publish(event(uuid.New(), uuid.New(), models.StatusInReview))
	b.Publish(event(uuid.New(), uuid.New(), models.StatusApproved))

	require.Len(t, scoped.C, 1)
	assert.Equal(t, models.StatusApproved, (<-scoped.C).NewStatus)
}

func TestCombinedFilterDeliversOnce(t *testing.T) {
	b := New(4)
	trackID := uuid.New()
	movieID := uuid.New()

	// Both keys match the same event; the subscriber still sees it once.
	sub := b.Subscribe(Filter{TrackID: &trackID, MovieID: &movieID})
	defer sub.Close()

	b.Publish(event(trackID, movieID, models.StatusInReview))

	assert.Len(t, sub.C, 1)
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	b := New(4)

	b.Publish(event(uuid.New(), uuid.New(), models.StatusInReview))

	sub := b.Subscribe(Filter{})
	defer sub.Close()
	assert.Empty(t, sub.C)
}

func TestCloseDetachesAndClosesChannel(t *testing.T) {
	b := New(4)
	sub := b.Subscribe(Filter{})

	require.Equal(t, 1, b.SubscriberCount())
	sub.Close()
	sub.Close() // idempotent

	assert.Equal(t, 0, b.SubscriberCount())
	_, open := <-sub.C
	assert.False(t, open)

	// Publishing after detach must not panic or deliver.
	b.Publish(event(uuid.New(), uuid.New(), models.StatusInReview))
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := New(1)
	sub := b.Subscribe(Filter{})
	defer sub.Close()

	// Buffer holds one event; the second is dropped, publish returns.
	b.Publish(event(uuid.New(), uuid.New(), models.StatusInReview))
	b.Publish(event(uuid.New(), uuid.New(), models.StatusRejected))

	require.Len(t, sub.C, 1)
	assert.Equal(t, models.StatusInReview, (<-sub.C).NewStatus)
}

func TestConcurrentPublishAndClose(t *testing.T) {
	// Subscribers disconnecting while a publish fans out must never make
	// the publisher send on a closed channel.
	b := New(1)

	for round := 0; round < 20; round++ {
		subs := make([]*Subscription, 200)
		for i := range subs {
			subs[i] = b.Subscribe(Filter{})
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				b.Publish(event(uuid.New(), uuid.New(), models.StatusInReview))
			}
		}()
		go func() {
			defer wg.Done()
			for _, sub := range subs {
				sub.Close()
			}
		}()
		wg.Wait()
	}

	assert.Equal(t, 0, b.SubscriberCount())
}

func TestSubscriberCountDeduplicatesKeys(t *testing.T) {
	b := New(4)
	trackID := uuid.New()
	movieID := uuid.New()

	sub := b.Subscribe(Filter{TrackID: &trackID, MovieID: &movieID})
	defer sub.Close()

	assert.Equal(t, 1, b.SubscriberCount())
}

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }
