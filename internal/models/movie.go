// internal/models/movie.go
package models

import "time"

type Movie struct {
	BaseModel
	Title       string      `json:"title" gorm:"type:varchar(255);not null"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Director    string      `json:"director,omitempty" gorm:"type:varchar(100)"`
	Producer    string      `json:"producer,omitempty" gorm:"type:varchar(100)"`
	ReleaseDate *time.Time  `json:"release_date,omitempty" gorm:"type:date"`
	Status      MovieStatus `json:"status" gorm:"type:varchar(50);default:'development'"`

	// Relationships
	Scenes []Scene `json:"scenes,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}
