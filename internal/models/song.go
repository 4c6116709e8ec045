// internal/models/song.go
package models

type Song struct {
	BaseModel
	Title        string `json:"title" gorm:"type:varchar(255);not null"`
	Artist       string `json:"artist" gorm:"type:varchar(255);not null"`
	Duration     *int   `json:"duration,omitempty"` // seconds
	RightsHolder string `json:"rights_holder,omitempty" gorm:"type:varchar(255)"`

	// Relationships. Deleting a song is restricted while tracks reference it.
	Tracks []Track `json:"tracks,omitempty" gorm:"foreignKey:SongID;constraint:OnDelete:RESTRICT"`
}
