// internal/models/track.go
package models

import "github.com/google/uuid"

// Track places a song inside a scene. Each track owns exactly one License,
// created in pending state when the track is created.
type Track struct {
	BaseModel
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	StartTime int       `json:"start_time" gorm:"not null"` // seconds, relative to scene start
	EndTime   int       `json:"end_time" gorm:"not null"`
	Volume    float64   `json:"volume" gorm:"type:decimal(3,2);default:1.0"` // 0.0 to 1.0
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	SceneID   uuid.UUID `json:"scene_id" gorm:"type:uuid;not null;index"`
	SongID    uuid.UUID `json:"song_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Scene   Scene    `json:"scene,omitempty" gorm:"foreignKey:SceneID"`
	Song    Song     `json:"song,omitempty" gorm:"foreignKey:SongID"`
	License *License `json:"license,omitempty" gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE"`
}
