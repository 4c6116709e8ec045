// internal/services/song_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

type SongService struct {
	db *gorm.DB
}

type CreateSongRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	Artist       string `json:"artist" validate:"required,max=255"`
	Duration     *int   `json:"duration,omitempty" validate:"omitempty,gte=1"`
	RightsHolder string `json:"rights_holder,omitempty" validate:"max=255"`
}

type UpdateSongRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Artist       *string `json:"artist,omitempty" validate:"omitempty,max=255"`
	Duration     *int    `json:"duration,omitempty" validate:"omitempty,gte=1"`
	RightsHolder *string `json:"rights_holder,omitempty" validate:"omitempty,max=255"`
}

func NewSongService(db *gorm.DB) *SongService {
	return &SongService{db: db}
}

func (s *SongService) Create(ctx context.Context, req *CreateSongRequest) (*models.Song, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	song := &models.Song{
		Title:        req.Title,
		Artist:       req.Artist,
		Duration:     req.Duration,
		RightsHolder: req.RightsHolder,
	}

	if err := s.db.WithContext(ctx).Create(song).Error; err != nil {
		return nil, fmt.Errorf("failed to create song: %w", err)
	}
	return song, nil
}

func (s *SongService) FindAll(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := s.db.WithContext(ctx).Preload("Tracks").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch songs: %w", err)
	}
	return songs, nil
}

func (s *SongService) FindOne(ctx context.Context, id uuid.UUID) (*models.Song, error) {
	var song models.Song
	err := s.db.WithContext(ctx).
		Preload("Tracks").Preload("Tracks.Scene").Preload("Tracks.License").
		First(&song, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &song, nil
}

func (s *SongService) Update(ctx context.Context, id uuid.UUID, req *UpdateSongRequest) (*models.Song, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	song, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		song.Title = *req.Title
	}
	if req.Artist != nil {
		song.Artist = *req.Artist
	}
	if req.Duration != nil {
		song.Duration = req.Duration
	}
	if req.RightsHolder != nil {
		song.RightsHolder = *req.RightsHolder
	}

	if err := s.db.WithContext(ctx).Save(song).Error; err != nil {
		return nil, fmt.Errorf("failed to update song: %w", err)
	}
	return song, nil
}

// Remove refuses to delete a song that tracks still reference, matching
// the restrict constraint on the relation.
func (s *SongService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	var trackCount int64
	if err := s.db.WithContext(ctx).Model(&models.Track{}).Where("song_id = ?", id).Count(&trackCount).Error; err != nil {
		return fmt.Errorf("failed to check song usage: %w", err)
	}
	if trackCount > 0 {
		return ErrSongInUse
	}

	if err := s.db.WithContext(ctx).Delete(&models.Song{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return nil
}
