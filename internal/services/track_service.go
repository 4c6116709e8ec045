// internal/services/track_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/medialicense-backend/internal/database"
	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

type TrackService struct {
	db *gorm.DB
}

type CreateTrackRequest struct {
	Name      string    `json:"name" validate:"required,max=255"`
	StartTime int       `json:"start_time" validate:"gte=0"`
	EndTime   int       `json:"end_time" validate:"required,gte=1"`
	Volume    *float64  `json:"volume,omitempty" validate:"omitempty,gte=0,lte=1"`
	Notes     string    `json:"notes,omitempty"`
	SceneID   uuid.UUID `json:"scene_id" validate:"required"`
	SongID    uuid.UUID `json:"song_id" validate:"required"`
}

type UpdateTrackRequest struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	StartTime *int       `json:"start_time,omitempty" validate:"omitempty,gte=0"`
	EndTime   *int       `json:"end_time,omitempty" validate:"omitempty,gte=1"`
	Volume    *float64   `json:"volume,omitempty" validate:"omitempty,gte=0,lte=1"`
	Notes     *string    `json:"notes,omitempty"`
	SceneID   *uuid.UUID `json:"scene_id,omitempty"`
	SongID    *uuid.UUID `json:"song_id,omitempty"`
}

// ErrInvalidTimeRange guards the start/end ordering on tracks.
var ErrInvalidTimeRange = errors.New("start time must be less than end time")

func NewTrackService(db *gorm.DB) *TrackService {
	return &TrackService{db: db}
}

// Create stores the track and eagerly creates its license in pending
// state, in one transaction. Every track has exactly one license.
func (s *TrackService) Create(ctx context.Context, req *CreateTrackRequest) (*models.Track, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}

	var scene models.Scene
	if err := s.db.WithContext(ctx).First(&scene, "id = ?", req.SceneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSceneNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var song models.Song
	if err := s.db.WithContext(ctx).First(&song, "id = ?", req.SongID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	track := &models.Track{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Volume:    1.0,
		Notes:     req.Notes,
		SceneID:   scene.ID,
		SongID:    song.ID,
	}
	if req.Volume != nil {
		track.Volume = *req.Volume
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(track).Error; err != nil {
			return fmt.Errorf("failed to create track: %w", err)
		}

		now := time.Now()
		license := &models.License{
			Status:           models.StatusPending,
			Currency:         "USD",
			LastStatusChange: &now,
			TrackID:          track.ID,
		}
		if err := tx.Create(license).Error; err != nil {
			return fmt.Errorf("failed to create initial license: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(ctx, track.ID)
}

func (s *TrackService) FindAll(ctx context.Context) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Preload("Scene").Preload("Song").Preload("License").
		Find(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracks: %w", err)
	}
	return tracks, nil
}

func (s *TrackService) FindByScene(ctx context.Context, sceneID uuid.UUID) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("scene_id = ?", sceneID).
		Preload("Song").Preload("License").
		Find(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracks by scene: %w", err)
	}
	return tracks, nil
}

func (s *TrackService) FindOne(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	var track models.Track
	err := s.db.WithContext(ctx).
		Preload("Scene").Preload("Scene.Movie").Preload("Song").Preload("License").
		First(&track, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &track, nil
}

func (s *TrackService) Update(ctx context.Context, id uuid.UUID, req *UpdateTrackRequest) (*models.Track, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	track, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	start := track.StartTime
	end := track.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if start >= end {
		return nil, ErrInvalidTimeRange
	}

	if req.SceneID != nil {
		var scene models.Scene
		if err := s.db.WithContext(ctx).First(&scene, "id = ?", *req.SceneID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSceneNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		track.SceneID = scene.ID
	}

	if req.SongID != nil {
		var song models.Song
		if err := s.db.WithContext(ctx).First(&song, "id = ?", *req.SongID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSongNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		track.SongID = song.ID
	}

	if req.Name != nil {
		track.Name = *req.Name
	}
	if req.Volume != nil {
		track.Volume = *req.Volume
	}
	if req.Notes != nil {
		track.Notes = *req.Notes
	}
	track.StartTime = start
	track.EndTime = end

	// Save without the preloaded associations so relation edits cannot
	// write through to other tables.
	if err := s.db.WithContext(ctx).Omit("Scene", "Song", "License").Save(track).Error; err != nil {
		return nil, fmt.Errorf("failed to update track: %w", err)
	}

	return s.FindOne(ctx, track.ID)
}

// Remove deletes the track and its license together.
func (s *TrackService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", id).Delete(&models.License{}).Error; err != nil {
			return fmt.Errorf("failed to delete license: %w", err)
		}
		if err := tx.Delete(&models.Track{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete track: %w", err)
		}
		return nil
	})
}
