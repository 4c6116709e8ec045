// internal/services/transition_dispatcher.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/medialicense-backend/internal/broadcast"
	"github.com/javajoker/medialicense-backend/internal/models"
)

// TransitionDispatcher drives the side effects of a committed status
// change: cache invalidation first, then the notification enqueue, then
// the broadcast. Each step is an isolated failure domain; a failure is
// logged and the remaining steps still run. Nothing here can roll back
// or fail the persisted transition.
type TransitionDispatcher struct {
	summary       *WorkflowSummaryCache
	notifications *NotificationService
	broadcaster   *broadcast.Broadcaster
}

func NewTransitionDispatcher(summary *WorkflowSummaryCache, notifications *NotificationService, broadcaster *broadcast.Broadcaster) *TransitionDispatcher {
	return &TransitionDispatcher{
		summary:       summary,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

func (d *TransitionDispatcher) Dispatch(ctx context.Context, license *models.License, event models.TransitionEvent) {
	// Invalidate before anything else so a summary read that follows the
	// transition response can never observe the stale cached counts.
	d.summary.Invalidate(ctx)

	job := d.notifications.BuildJob(license, event)
	if err := d.notifications.Enqueue(ctx, job); err != nil {
		logrus.WithError(err).WithField("license_id", event.LicenseID).
			Error("Failed to enqueue transition notification")
	}

	d.broadcaster.Publish(event)
}
