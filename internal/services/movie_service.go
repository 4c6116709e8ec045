// internal/services/movie_service.go
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

type MovieService struct {
	db *gorm.DB
}

type CreateMovieRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description,omitempty"`
	Director    string     `json:"director,omitempty" validate:"max=100"`
	Producer    string     `json:"producer,omitempty" validate:"max=100"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Status      string     `json:"status,omitempty"`
}

type UpdateMovieRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string    `json:"description,omitempty"`
	Director    *string    `json:"director,omitempty" validate:"omitempty,max=100"`
	Producer    *string    `json:"producer,omitempty" validate:"omitempty,max=100"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

func NewMovieService(db *gorm.DB) *MovieService {
	return &MovieService{db: db}
}

func (s *MovieService) Create(ctx context.Context, req *CreateMovieRequest) (*models.Movie, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	movie := &models.Movie{
		Title:       req.Title,
		Description: req.Description,
		Director:    req.Director,
		Producer:    req.Producer,
		ReleaseDate: req.ReleaseDate,
		Status:      models.MovieStatus(req.Status),
	}
	if movie.Status == "" {
		movie.Status = models.MovieStatusDevelopment
	}

	if err := s.db.WithContext(ctx).Create(movie).Error; err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return movie, nil
}

func (s *MovieService) FindAll(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := s.db.WithContext(ctx).Preload("Scenes").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}
	return movies, nil
}

func (s *MovieService) FindOne(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	var movie models.Movie
	err := s.db.WithContext(ctx).
		Preload("Scenes").Preload("Scenes.Tracks").Preload("Scenes.Tracks.Song").Preload("Scenes.Tracks.License").
		First(&movie, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &movie, nil
}

func (s *MovieService) Update(ctx context.Context, id uuid.UUID, req *UpdateMovieRequest) (*models.Movie, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	movie, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.Producer != nil {
		movie.Producer = *req.Producer
	}
	if req.ReleaseDate != nil {
		movie.ReleaseDate = req.ReleaseDate
	}
	if req.Status != nil {
		movie.Status = models.MovieStatus(*req.Status)
	}

	if err := s.db.WithContext(ctx).Save(movie).Error; err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	return movie, nil
}

// Remove deletes the movie and cascades through scenes, tracks and their
// licenses. The cascade is explicit so it behaves identically on every
// supported database.
func (s *MovieService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		sceneIDs := tx.Model(&models.Scene{}).Select("id").Where("movie_id = ?", id)
		trackIDs := tx.Model(&models.Track{}).Select("id").Where("scene_id IN (?)", sceneIDs)

		if err := tx.Where("track_id IN (?)", trackIDs).Delete(&models.License{}).Error; err != nil {
			return fmt.Errorf("failed to delete licenses: %w", err)
		}
		if err := tx.Where("scene_id IN (?)", sceneIDs).Delete(&models.Track{}).Error; err != nil {
			return fmt.Errorf("failed to delete tracks: %w", err)
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Scene{}).Error; err != nil {
			return fmt.Errorf("failed to delete scenes: %w", err)
		}
		if err := tx.Delete(&models.Movie{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete movie: %w", err)
		}
		return nil
	})
}
