// internal/services/notification_worker.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/queue"
)

// Sender is the notification transport boundary. The dispatcher only
// guarantees delivery attempts with retry, not delivery.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationWorker consumes queued notification jobs and attempts
// delivery. Failed jobs are re-queued with exponential backoff until the
// attempt budget is exhausted, then marked permanently failed in the logs.
type NotificationWorker struct {
	queue  queue.Queue
	sender Sender
	cfg    config.WorkflowConfig
}

func NewNotificationWorker(q queue.Queue, sender Sender, cfg config.WorkflowConfig) *NotificationWorker {
	return &NotificationWorker{
		queue:  q,
		sender: sender,
		cfg:    cfg,
	}
}

// Run consumes jobs until the context is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) error {
	logrus.Info("Notification worker started")
	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logrus.Info("Notification worker stopped")
				return nil
			}
			logrus.WithError(err).Error("Failed to dequeue notification job")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}

		w.Process(ctx, job)
	}
}

// Process runs one delivery attempt for the job and schedules the retry
// on failure. Exported so tests can drive attempts without the Run loop.
func (w *NotificationWorker) Process(ctx context.Context, job *models.NotificationJob) {
	attempt := job.Attempts + 1
	log := logrus.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"license_id": job.Event.LicenseID,
		"recipient":  job.Email,
		"attempt":    attempt,
	})

	subject, body, err := renderStatusChangeEmail(job)
	if err != nil {
		// A job that cannot render will never succeed; drop it.
		log.WithError(err).Error("Notification job permanently failed: unrenderable")
		return
	}

	err = w.sender.Send(ctx, job.Email, subject, body)
	if err == nil {
		log.Info("Notification delivered")
		return
	}

	job.Attempts = attempt
	job.LastError = err.Error()
	log.WithError(err).Warn("Notification delivery failed")

	if job.Attempts >= w.cfg.MaxAttempts {
		log.WithField("last_error", job.LastError).Error("Notification job permanently failed: attempts exhausted")
		return
	}

	backoff := w.backoff(job.Attempts)
	if err := w.queue.Enqueue(ctx, job, backoff); err != nil {
		log.WithError(err).Error("Failed to re-queue notification job")
		return
	}
	log.WithField("retry_in", backoff).Info("Notification job re-queued")
}

// backoff waits base * 2^(n-1) ms before redelivery after the n-th
// failed attempt.
func (w *NotificationWorker) backoff(attemptsMade int) time.Duration {
	base := time.Duration(w.cfg.BackoffBaseMs) * time.Millisecond
	return base << (attemptsMade - 1)
}

var statusChangeTemplate = template.Must(template.New("status_change").Parse(`
<!DOCTYPE html>
<html>
<body>
	<h2>License Status Update</h2>
	{{if .ContactPerson}}<p>Hello {{.ContactPerson}},</p>{{end}}
	<p>The license for track "{{.Event.TrackName}}" ({{.Event.SongTitle}} by {{.Event.SongArtist}})
	in scene "{{.Event.SceneName}}" of "{{.Event.MovieTitle}}" changed status:</p>
	<p><strong>{{.Event.OldStatus}}</strong> &rarr; <strong>{{.Event.NewStatus}}</strong></p>
	{{if .Event.Notes}}<p>Notes: {{.Event.Notes}}</p>{{end}}
	<p>Best regards,<br>Media Licensing Team</p>
</body>
</html>`))

func renderStatusChangeEmail(job *models.NotificationJob) (string, string, error) {
	subject := fmt.Sprintf("License Status Update - %s (%s -> %s)",
		job.Event.TrackName, job.Event.OldStatus, job.Event.NewStatus)

	var buf bytes.Buffer
	if err := statusChangeTemplate.Execute(&buf, job); err != nil {
		return "", "", fmt.Errorf("failed to render email template: %w", err)
	}

	return subject, buf.String(), nil
}

// SMTPSender delivers notification emails over SMTP. Without a configured
// host it only logs, which keeps development environments mail-free.
type SMTPSender struct {
	cfg config.EmailConfig
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if s.cfg.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"recipient": to,
			"subject":   subject,
		}).Info("SMTP not configured, skipping email delivery")
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	return smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, msg)
}
