// internal/services/license_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

// LicenseService owns the licensing workflow: CRUD on license records,
// the status transition engine, and the cached workflow summary. Side
// effects of a transition run through the TransitionDispatcher after the
// record is persisted.
type LicenseService struct {
	db         *gorm.DB
	summary    *WorkflowSummaryCache
	dispatcher *TransitionDispatcher
}

type CreateLicenseRequest struct {
	TrackID          uuid.UUID  `json:"track_id" validate:"required"`
	LicenseFee       *float64   `json:"license_fee,omitempty" validate:"omitempty,gte=0"`
	Currency         string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	LicenseStartDate *time.Time `json:"license_start_date,omitempty"`
	LicenseEndDate   *time.Time `json:"license_end_date,omitempty"`
	Terms            string     `json:"terms,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	ContactPerson    string     `json:"contact_person,omitempty"`
	ContactEmail     string     `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone     string     `json:"contact_phone,omitempty"`
}

type UpdateLicenseRequest struct {
	LicenseFee       *float64   `json:"license_fee,omitempty" validate:"omitempty,gte=0"`
	Currency         *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	LicenseStartDate *time.Time `json:"license_start_date,omitempty"`
	LicenseEndDate   *time.Time `json:"license_end_date,omitempty"`
	Terms            *string    `json:"terms,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	ContactPerson    *string    `json:"contact_person,omitempty"`
	ContactEmail     *string    `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone     *string    `json:"contact_phone,omitempty"`
}

type UpdateLicenseStatusRequest struct {
	Status    string `json:"status" validate:"required"`
	Notes     string `json:"notes,omitempty"`
	ChangedBy string `json:"changed_by,omitempty"`
}

func NewLicenseService(db *gorm.DB, summary *WorkflowSummaryCache, dispatcher *TransitionDispatcher) *LicenseService {
	return &LicenseService{
		db:         db,
		summary:    summary,
		dispatcher: dispatcher,
	}
}

// Create registers a license explicitly. Most licenses are created
// implicitly in pending state when their track is created; this exists
// for re-attaching a license after an explicit removal.
func (s *LicenseService) Create(ctx context.Context, req *CreateLicenseRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var track models.Track
	if err := s.db.WithContext(ctx).First(&track, "id = ?", req.TrackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	license := &models.License{
		Status:           models.StatusPending,
		LicenseFee:       req.LicenseFee,
		Currency:         req.Currency,
		LicenseStartDate: req.LicenseStartDate,
		LicenseEndDate:   req.LicenseEndDate,
		Terms:            req.Terms,
		Notes:            req.Notes,
		ContactPerson:    req.ContactPerson,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		LastStatusChange: &now,
		TrackID:          track.ID,
	}
	if license.Currency == "" {
		license.Currency = "USD"
	}

	if err := s.db.WithContext(ctx).Create(license).Error; err != nil {
		return nil, fmt.Errorf("failed to create license: %w", err)
	}

	return s.FindOne(ctx, license.ID)
}

// FindAll lists licenses paginated and sorted. The total counts every
// license, not just the returned page.
func (s *LicenseService) FindAll(ctx context.Context, params utils.PaginationParams) ([]models.License, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.License{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count licenses: %w", err)
	}

	query := s.db.WithContext(ctx).
		Preload("Track").Preload("Track.Scene").Preload("Track.Song")
	query = utils.ApplySort(query, params, []string{"created_at", "last_status_change", "status"})
	query = utils.ApplyPagination(query, params)

	var licenses []models.License
	if err := query.Find(&licenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch licenses: %w", err)
	}
	return licenses, total, nil
}

func (s *LicenseService) FindByStatus(ctx context.Context, status models.LicensingStatus) ([]models.License, error) {
	var licenses []models.License
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("Track").Preload("Track.Scene").Preload("Track.Song").
		Find(&licenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch licenses by status: %w", err)
	}
	return licenses, nil
}

// FindOne loads a license with the full relation chain (track, scene,
// movie, song) so transition events can be built without extra lookups.
func (s *LicenseService) FindOne(ctx context.Context, id uuid.UUID) (*models.License, error) {
	var license models.License
	err := s.db.WithContext(ctx).
		Preload("Track").Preload("Track.Scene").Preload("Track.Scene.Movie").Preload("Track.Song").
		First(&license, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &license, nil
}

func (s *LicenseService) FindByTrack(ctx context.Context, trackID uuid.UUID) (*models.License, error) {
	var license models.License
	err := s.db.WithContext(ctx).
		Preload("Track").Preload("Track.Scene").Preload("Track.Song").
		First(&license, "track_id = ?", trackID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &license, nil
}

// Update edits non-status fields. Status only changes through
// UpdateStatus so the transition table cannot be bypassed.
func (s *LicenseService) Update(ctx context.Context, id uuid.UUID, req *UpdateLicenseRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	license, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LicenseFee != nil {
		license.LicenseFee = req.LicenseFee
	}
	if req.Currency != nil {
		license.Currency = *req.Currency
	}
	if req.LicenseStartDate != nil {
		license.LicenseStartDate = req.LicenseStartDate
	}
	if req.LicenseEndDate != nil {
		license.LicenseEndDate = req.LicenseEndDate
	}
	if req.Terms != nil {
		license.Terms = *req.Terms
	}
	if req.Notes != nil {
		license.Notes = *req.Notes
	}
	if req.ContactPerson != nil {
		license.ContactPerson = *req.ContactPerson
	}
	if req.ContactEmail != nil {
		license.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		license.ContactPhone = *req.ContactPhone
	}

	if err := s.db.WithContext(ctx).Omit("Track").Save(license).Error; err != nil {
		return nil, fmt.Errorf("failed to update license: %w", err)
	}

	return license, nil
}

// UpdateStatus performs one workflow transition. The requested status is
// validated against the transition table; on success the record is
// persisted first and only then do the side effects run, in order: cache
// invalidation, notification enqueue, event broadcast. Side-effect
// failures never affect the returned result.
func (s *LicenseService) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateLicenseStatusRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	requested, ok := models.ParseLicensingStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatusValue, req.Status)
	}

	license, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := license.Status
	if !models.CanTransition(oldStatus, requested) {
		return nil, &InvalidTransitionError{
			From:      oldStatus,
			Requested: requested,
			Allowed:   models.StatusTransitions[oldStatus],
		}
	}

	now := time.Now()
	license.Status = requested
	if req.Notes != "" {
		license.Notes = req.Notes
	}
	if req.ChangedBy != "" {
		license.ChangedBy = req.ChangedBy
	}
	license.LastStatusChange = &now

	if err := s.db.WithContext(ctx).Omit("Track").Save(license).Error; err != nil {
		return nil, fmt.Errorf("failed to update license status: %w", err)
	}

	event := models.TransitionEvent{
		LicenseID:  license.ID,
		TrackID:    license.TrackID,
		MovieID:    license.Track.Scene.MovieID,
		OldStatus:  oldStatus,
		NewStatus:  requested,
		Notes:      req.Notes,
		ChangedAt:  now,
		TrackName:  license.Track.Name,
		SongTitle:  license.Track.Song.Title,
		SongArtist: license.Track.Song.Artist,
		MovieTitle: license.Track.Scene.Movie.Title,
		SceneName:  license.Track.Scene.Name,
	}

	s.dispatcher.Dispatch(ctx, license, event)

	return license, nil
}

func (s *LicenseService) Remove(ctx context.Context, id uuid.UUID) error {
	license, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.License{}, "id = ?", license.ID).Error; err != nil {
		return fmt.Errorf("failed to delete license: %w", err)
	}
	return nil
}

// GetWorkflowSummary returns the cached per-status counts.
func (s *LicenseService) GetWorkflowSummary(ctx context.Context) (map[models.LicensingStatus]int64, error) {
	return s.summary.GetSummary(ctx)
}
