// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the primary key in Go so the same models work
// against Postgres and the in-memory SQLite databases used in tests.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type LicensingStatus string

const (
	StatusPending     LicensingStatus = "pending"
	StatusInReview    LicensingStatus = "in_review"
	StatusNegotiating LicensingStatus = "negotiating"
	StatusApproved    LicensingStatus = "approved"
	StatusRejected    LicensingStatus = "rejected"
	StatusExpired     LicensingStatus = "expired"
)

// AllStatuses lists every licensing status. Workflow summaries report a
// count for each of these, zero included.
var AllStatuses = []LicensingStatus{
	StatusPending,
	StatusInReview,
	StatusNegotiating,
	StatusApproved,
	StatusRejected,
	StatusExpired,
}

// StatusTransitions maps each status to its legal successors. The graph is
// not acyclic: rejected and expired licenses loop back to pending.
var StatusTransitions = map[LicensingStatus][]LicensingStatus{
	StatusPending:     {StatusInReview, StatusRejected},
	StatusInReview:    {StatusNegotiating, StatusApproved, StatusRejected},
	StatusNegotiating: {StatusApproved, StatusRejected, StatusInReview},
	StatusApproved:    {StatusExpired},
	StatusRejected:    {StatusPending},
	StatusExpired:     {StatusPending},
}

// ParseLicensingStatus validates a raw status value.
func ParseLicensingStatus(raw string) (LicensingStatus, bool) {
	status := LicensingStatus(raw)
	for _, s := range AllStatuses {
		if s == status {
			return status, true
		}
	}
	return "", false
}

// CanTransition reports whether a status change is allowed by the
// transition table. Self-transitions are not in the table for any status,
// so they are rejected here too.
func CanTransition(from, to LicensingStatus) bool {
	for _, allowed := range StatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type MovieStatus string

const (
	MovieStatusDevelopment    MovieStatus = "development"
	MovieStatusProduction     MovieStatus = "production"
	MovieStatusPostProduction MovieStatus = "post_production"
	MovieStatusReleased       MovieStatus = "released"
)
