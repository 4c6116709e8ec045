// internal/services/scene_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/medialicense-backend/internal/database"
	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

type SceneService struct {
	db *gorm.DB
}

type CreateSceneRequest struct {
	Name           string    `json:"name" validate:"required,max=255"`
	Description    string    `json:"description,omitempty"`
	SceneNumber    int       `json:"scene_number" validate:"required,gte=1"`
	StartTimestamp *int      `json:"start_timestamp,omitempty" validate:"omitempty,gte=0"`
	EndTimestamp   *int      `json:"end_timestamp,omitempty" validate:"omitempty,gte=0"`
	MovieID        uuid.UUID `json:"movie_id" validate:"required"`
}

type UpdateSceneRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description    *string `json:"description,omitempty"`
	SceneNumber    *int    `json:"scene_number,omitempty" validate:"omitempty,gte=1"`
	StartTimestamp *int    `json:"start_timestamp,omitempty" validate:"omitempty,gte=0"`
	EndTimestamp   *int    `json:"end_timestamp,omitempty" validate:"omitempty,gte=0"`
}

func NewSceneService(db *gorm.DB) *SceneService {
	return &SceneService{db: db}
}

func (s *SceneService) Create(ctx context.Context, req *CreateSceneRequest) (*models.Scene, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var movie models.Movie
	if err := s.db.WithContext(ctx).First(&movie, "id = ?", req.MovieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	scene := &models.Scene{
		Name:           req.Name,
		Description:    req.Description,
		SceneNumber:    req.SceneNumber,
		StartTimestamp: req.StartTimestamp,
		EndTimestamp:   req.EndTimestamp,
		MovieID:        movie.ID,
	}

	if err := s.db.WithContext(ctx).Create(scene).Error; err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	return scene, nil
}

func (s *SceneService) FindAll(ctx context.Context) ([]models.Scene, error) {
	var scenes []models.Scene
	if err := s.db.WithContext(ctx).Preload("Movie").Preload("Tracks").Find(&scenes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch scenes: %w", err)
	}
	return scenes, nil
}

func (s *SceneService) FindByMovie(ctx context.Context, movieID uuid.UUID) ([]models.Scene, error) {
	var scenes []models.Scene
	err := s.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Preload("Tracks").Preload("Tracks.Song").
		Order("scene_number").
		Find(&scenes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenes by movie: %w", err)
	}
	return scenes, nil
}

func (s *SceneService) FindOne(ctx context.Context, id uuid.UUID) (*models.Scene, error) {
	var scene models.Scene
	err := s.db.WithContext(ctx).
		Preload("Movie").Preload("Tracks").Preload("Tracks.Song").Preload("Tracks.License").
		First(&scene, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSceneNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &scene, nil
}

func (s *SceneService) Update(ctx context.Context, id uuid.UUID, req *UpdateSceneRequest) (*models.Scene, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	scene, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		scene.Name = *req.Name
	}
	if req.Description != nil {
		scene.Description = *req.Description
	}
	if req.SceneNumber != nil {
		scene.SceneNumber = *req.SceneNumber
	}
	if req.StartTimestamp != nil {
		scene.StartTimestamp = req.StartTimestamp
	}
	if req.EndTimestamp != nil {
		scene.EndTimestamp = req.EndTimestamp
	}

	if err := s.db.WithContext(ctx).Save(scene).Error; err != nil {
		return nil, fmt.Errorf("failed to update scene: %w", err)
	}
	return scene, nil
}

func (s *SceneService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		trackIDs := tx.Model(&models.Track{}).Select("id").Where("scene_id = ?", id)

		if err := tx.Where("track_id IN (?)", trackIDs).Delete(&models.License{}).Error; err != nil {
			return fmt.Errorf("failed to delete licenses: %w", err)
		}
		if err := tx.Where("scene_id = ?", id).Delete(&models.Track{}).Error; err != nil {
			return fmt.Errorf("failed to delete tracks: %w", err)
		}
		if err := tx.Delete(&models.Scene{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete scene: %w", err)
		}
		return nil
	})
}
