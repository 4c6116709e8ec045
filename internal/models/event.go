// internal/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// TransitionEvent is the immutable record of one status change. Display
// fields are denormalized at transition time so notifications and live
// subscribers never need a follow-up fetch.
type TransitionEvent struct {
	LicenseID  uuid.UUID       `json:"license_id"`
	TrackID    uuid.UUID       `json:"track_id"`
	MovieID    uuid.UUID       `json:"movie_id"`
	OldStatus  LicensingStatus `json:"old_status"`
	NewStatus  LicensingStatus `json:"new_status"`
	Notes      string          `json:"notes,omitempty"`
	ChangedAt  time.Time       `json:"changed_at"`
	TrackName  string          `json:"track_name"`
	SongTitle  string          `json:"song_title"`
	SongArtist string          `json:"song_artist"`
	MovieTitle string          `json:"movie_title"`
	SceneName  string          `json:"scene_name"`
}

// NotificationJob is one queued email notification about a status change.
// Attempts counts deliveries already made; the queue holds the job until
// its eligible-at time.
type NotificationJob struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	ContactPerson string          `json:"contact_person,omitempty"`
	Event         TransitionEvent `json:"event"`
	Attempts      int             `json:"attempts"`
	LastError     string          `json:"last_error,omitempty"`
	EnqueuedAt    time.Time       `json:"enqueued_at"`
}
