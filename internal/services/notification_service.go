// internal/services/notification_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/queue"
)

// NotificationService enqueues status-change notification jobs. Enqueue
// returns as soon as the job is queued; delivery happens out of band in
// the worker with the configured retry schedule.
type NotificationService struct {
	queue queue.Queue
	cfg   config.WorkflowConfig
	email config.EmailConfig
}

func NewNotificationService(q queue.Queue, cfg config.WorkflowConfig, email config.EmailConfig) *NotificationService {
	return &NotificationService{
		queue: q,
		cfg:   cfg,
		email: email,
	}
}

// BuildJob assembles a notification job from a transition event and the
// license's contact details. Licenses without a contact email fall back
// to the configured licensing inbox.
func (s *NotificationService) BuildJob(license *models.License, event models.TransitionEvent) *models.NotificationJob {
	email := license.ContactEmail
	if email == "" {
		email = s.email.FallbackTo
	}

	return &models.NotificationJob{
		ID:            uuid.New(),
		Email:         email,
		ContactPerson: license.ContactPerson,
		Event:         event,
		EnqueuedAt:    time.Now(),
	}
}

// Enqueue stores the job with the mandatory initial delay before its
// first delivery attempt becomes eligible.
func (s *NotificationService) Enqueue(ctx context.Context, job *models.NotificationJob) error {
	delay := time.Duration(s.cfg.InitialDelayMs) * time.Millisecond
	if err := s.queue.Enqueue(ctx, job, delay); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"license_id": job.Event.LicenseID,
		"recipient":  job.Email,
	}).Info("Notification job enqueued")
	return nil
}

// EnqueueBulk enqueues every job independently. Partial success is
// expected; the returned slice holds the per-job outcome at the same
// index as the input.
func (s *NotificationService) EnqueueBulk(ctx context.Context, jobs []*models.NotificationJob) []error {
	results := make([]error, len(jobs))
	for i, job := range jobs {
		results[i] = s.Enqueue(ctx, job)
	}
	return results
}
