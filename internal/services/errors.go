// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javajoker/medialicense-backend/internal/models"
)

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrSceneNotFound   = errors.New("scene not found")
	ErrSongNotFound    = errors.New("song not found")
	ErrTrackNotFound   = errors.New("track not found")
	ErrLicenseNotFound = errors.New("license not found")

	// ErrSongInUse guards the restrict edge between songs and tracks.
	ErrSongInUse = errors.New("song is referenced by tracks and cannot be deleted")

	// ErrInvalidStatusValue marks a status string outside the closed enum.
	ErrInvalidStatusValue = errors.New("invalid licensing status value")
)

// InvalidTransitionError reports an illegal status change together with
// the license's current status and the full list of legal successors.
type InvalidTransitionError struct {
	From      models.LicensingStatus
	Requested models.LicensingStatus
	Allowed   []models.LicensingStatus
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = string(s)
	}
	return fmt.Sprintf("cannot transition from %s to %s. Allowed transitions: %s",
		e.From, e.Requested, strings.Join(allowed, ", "))
}
