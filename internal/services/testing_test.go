// internal/services/testing_test.go
package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Movie{},
		&models.Scene{},
		&models.Song{},
		&models.Track{},
		&models.License{},
	))

	return db
}

// testWorkflowConfig removes the delivery delays so queue-driven tests
// run without sleeping.
func testWorkflowConfig() config.WorkflowConfig {
	return config.WorkflowConfig{
		SummaryCacheTTL:     300,
		SummaryCacheKey:     "workflow-summary",
		NotificationQueue:   "licensing:notifications",
		MaxAttempts:         3,
		InitialDelayMs:      0,
		BackoffBaseMs:       0,
		WorkerPollMs:        5,
		SubscriberBufferLen: 16,
	}
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		FromEmail:  "noreply@medialicense.io",
		FromName:   "Media Licensing",
		FallbackTo: "licensing@example.com",
	}
}

// seedTrack creates a movie, scene, song, and one track through the
// services, returning the track with its pending license preloaded.
func seedTrack(t *testing.T, db *gorm.DB, name string) *models.Track {
	t.Helper()
	ctx := context.Background()

	movie, err := NewMovieService(db).Create(ctx, &CreateMovieRequest{
		Title: "Midnight Harbor",
	})
	require.NoError(t, err)

	scene, err := NewSceneService(db).Create(ctx, &CreateSceneRequest{
		Name:        "Opening Titles",
		SceneNumber: 1,
		MovieID:     movie.ID,
	})
	require.NoError(t, err)

	song, err := NewSongService(db).Create(ctx, &CreateSongRequest{
		Title:  "Tidewater",
		Artist: "The Gaslight Quartet",
	})
	require.NoError(t, err)

	track, err := NewTrackService(db).Create(ctx, &CreateTrackRequest{
		Name:      name,
		StartTime: 0,
		EndTime:   120,
		SceneID:   scene.ID,
		SongID:    song.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, track.License)

	return track
}
