// internal/models/scene.go
package models

import "github.com/google/uuid"

type Scene struct {
	BaseModel
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	Description    string    `json:"description,omitempty" gorm:"type:text"`
	SceneNumber    int       `json:"scene_number" gorm:"not null"`
	StartTimestamp *int      `json:"start_timestamp,omitempty"` // seconds from film start
	EndTimestamp   *int      `json:"end_timestamp,omitempty"`
	MovieID        uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Movie  Movie   `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
	Tracks []Track `json:"tracks,omitempty" gorm:"foreignKey:SceneID;constraint:OnDelete:CASCADE"`
}
