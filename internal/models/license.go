// internal/models/license.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// License tracks the clearance negotiation for one track's use of a song.
// The track link is 1:1 and unique; status only changes through the
// workflow transition operation.
type License struct {
	BaseModel
	Status           LicensingStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	LicenseFee       *float64        `json:"license_fee,omitempty" gorm:"type:decimal(10,2)"`
	Currency         string          `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	LicenseStartDate *time.Time      `json:"license_start_date,omitempty" gorm:"type:date"`
	LicenseEndDate   *time.Time      `json:"license_end_date,omitempty" gorm:"type:date"`
	Terms            string          `json:"terms,omitempty" gorm:"type:text"`
	Notes            string          `json:"notes,omitempty" gorm:"type:text"`
	ContactPerson    string          `json:"contact_person,omitempty" gorm:"type:varchar(255)"`
	ContactEmail     string          `json:"contact_email,omitempty" gorm:"type:varchar(255)"`
	ContactPhone     string          `json:"contact_phone,omitempty" gorm:"type:varchar(50)"`
	LastStatusChange *time.Time      `json:"last_status_change,omitempty"`
	ChangedBy        string          `json:"changed_by,omitempty" gorm:"type:varchar(255)"`
	TrackID          uuid.UUID       `json:"track_id" gorm:"type:uuid;not null;uniqueIndex"`

	// Relationships
	Track Track `json:"track,omitempty" gorm:"foreignKey:TrackID"`
}

// StatusCount is one row of the per-status aggregate used by the workflow
// summary.
type StatusCount struct {
	Status LicensingStatus `json:"status"`
	Count  int64           `json:"count"`
}
