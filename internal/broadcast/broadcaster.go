// internal/broadcast/broadcaster.go
package broadcast

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/medialicense-backend/internal/models"
)

const topicGlobal = "license.status.changed"

// Filter narrows a subscription to a track, a movie, a status, or any
// combination. A zero Filter receives every transition event.
type Filter struct {
	TrackID *uuid.UUID
	MovieID *uuid.UUID
	Status  *models.LicensingStatus
}

// Subscription is one attached listener. Events arrive on C until Close
// is called; events published before the subscription existed are never
// replayed.
type Subscription struct {
	C <-chan models.TransitionEvent

	id     uint64
	keys   []string
	ch     chan models.TransitionEvent
	closer func()
	once   sync.Once
}

// Close detaches the listener. In-flight events already buffered on C are
// still readable; nothing further is delivered.
func (s *Subscription) Close() {
	s.once.Do(s.closer)
}

// Broadcaster fans each transition event out to every subscription whose
// key set intersects the event's key set. It is instantiated once at
// process start and shared by handlers, never as package state.
type Broadcaster struct {
	mtx    sync.RWMutex
	topics map[string]map[uint64]*Subscription
	nextID uint64
	buffer int
}

func New(subscriberBuffer int) *Broadcaster {
	if subscriberBuffer <= 0 {
		subscriberBuffer = 16
	}
	return &Broadcaster{
		topics: make(map[string]map[uint64]*Subscription),
		buffer: subscriberBuffer,
	}
}

// Publish delivers the event once to every matching subscriber. A slow
// subscriber whose buffer is full misses the event rather than blocking
// the transition path.
func (b *Broadcaster) Publish(event models.TransitionEvent) {
	keys := publishKeys(event)

	// Sends happen under the read lock so a concurrent detach, which
	// closes the channel under the write lock, can never interleave with
	// a send. The sends are non-blocking, so holding the lock is cheap.
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	seen := make(map[uint64]*Subscription)
	for _, key := range keys {
		for id, sub := range b.topics[key] {
			seen[id] = sub
		}
	}

	for _, sub := range seen {
		select {
		case sub.ch <- event:
		default:
			logrus.WithFields(logrus.Fields{
				"license_id": event.LicenseID,
				"new_status": event.NewStatus,
			}).Warn("Dropping transition event for slow subscriber")
		}
	}
}

// Subscribe attaches a listener for events matching the filter.
func (b *Broadcaster) Subscribe(filter Filter) *Subscription {
	ch := make(chan models.TransitionEvent, b.buffer)
	sub := &Subscription{
		C:    ch,
		ch:   ch,
		keys: subscribeKeys(filter),
	}

	b.mtx.Lock()
	b.nextID++
	sub.id = b.nextID
	for _, key := range sub.keys {
		if b.topics[key] == nil {
			b.topics[key] = make(map[uint64]*Subscription)
		}
		b.topics[key][sub.id] = sub
	}
	b.mtx.Unlock()

	sub.closer = func() { b.detach(sub) }
	return sub
}

func (b *Broadcaster) detach(sub *Subscription) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for _, key := range sub.keys {
		delete(b.topics[key], sub.id)
		if len(b.topics[key]) == 0 {
			delete(b.topics, key)
		}
	}
	// Closed under the write lock so Publish, which sends under the read
	// lock, never races the close.
	close(sub.ch)
}

// SubscriberCount reports the number of distinct attached subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	seen := make(map[uint64]struct{})
	for _, subs := range b.topics {
		for id := range subs {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

func publishKeys(event models.TransitionEvent) []string {
	keys := []string{topicGlobal}
	if event.TrackID != uuid.Nil {
		keys = append(keys, trackKey(event.TrackID))
	}
	if event.MovieID != uuid.Nil {
		keys = append(keys, movieKey(event.MovieID))
	}
	if event.NewStatus != "" {
		keys = append(keys, statusKey(event.NewStatus))
	}
	return keys
}

func subscribeKeys(filter Filter) []string {
	// An unfiltered subscription listens on the global key only. Filtered
	// subscriptions listen on their scoped keys; matching any one of them
	// delivers the event.
	if filter.TrackID == nil && filter.MovieID == nil && filter.Status == nil {
		return []string{topicGlobal}
	}

	var keys []string
	if filter.TrackID != nil {
		keys = append(keys, trackKey(*filter.TrackID))
	}
	if filter.MovieID != nil {
		keys = append(keys, movieKey(*filter.MovieID))
	}
	if filter.Status != nil {
		keys = append(keys, statusKey(*filter.Status))
	}
	return keys
}

func trackKey(id uuid.UUID) string {
	return fmt.Sprintf("%s.track.%s", topicGlobal, id)
}

func movieKey(id uuid.UUID) string {
	return fmt.Sprintf("%s.movie.%s", topicGlobal, id)
}

func statusKey(status models.LicensingStatus) string {
	return fmt.Sprintf("%s.status.%s", topicGlobal, status)
}
