// internal/services/track_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/medialicense-backend/internal/models"
)

func TestTrackCreateRejectsInvertedTimeRange(t *testing.T) {
	db := newTestDB(t)
	track := seedTrack(t, db, "Titles underscore")

	_, err := NewTrackService(db).Create(context.Background(), &CreateTrackRequest{
		Name:      "Backwards",
		StartTime: 200,
		EndTime:   100,
		SceneID:   track.SceneID,
		SongID:    track.SongID,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTrackCreateRequiresExistingSceneAndSong(t *testing.T) {
	db := newTestDB(t)
	track := seedTrack(t, db, "Titles underscore")
	ctx := context.Background()
	tracks := NewTrackService(db)

	_, err := tracks.Create(ctx, &CreateTrackRequest{
		Name:      "Orphan",
		StartTime: 0,
		EndTime:   10,
		SceneID:   uuid.New(),
		SongID:    track.SongID,
	})
	assert.ErrorIs(t, err, ErrSceneNotFound)

	_, err = tracks.Create(ctx, &CreateTrackRequest{
		Name:      "Orphan",
		StartTime: 0,
		EndTime:   10,
		SceneID:   track.SceneID,
		SongID:    uuid.New(),
	})
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestTrackUpdateValidatesMergedTimeRange(t *testing.T) {
	db := newTestDB(t)
	track := seedTrack(t, db, "Titles underscore") // 0..120
	ctx := context.Background()
	tracks := NewTrackService(db)

	// New start collides with the existing end.
	_, err := tracks.Update(ctx, track.ID, &UpdateTrackRequest{StartTime: ptr(120)})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	updated, err := tracks.Update(ctx, track.ID, &UpdateTrackRequest{StartTime: ptr(30), EndTime: ptr(90)})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.StartTime)
	assert.Equal(t, 90, updated.EndTime)
}

func TestTrackRemoveDeletesLicense(t *testing.T) {
	db := newTestDB(t)
	track := seedTrack(t, db, "Titles underscore")
	ctx := context.Background()

	require.NoError(t, NewTrackService(db).Remove(ctx, track.ID))

	var licenseCount int64
	require.NoError(t, db.Model(&models.License{}).Count(&licenseCount).Error)
	assert.Equal(t, int64(0), licenseCount)
}

func TestSongRemoveRestrictedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	track := seedTrack(t, db, "Titles underscore")
	ctx := context.Background()
	songs := NewSongService(db)

	err := songs.Remove(ctx, track.SongID)
	assert.ErrorIs(t, err, ErrSongInUse)

	// Once the referencing track is gone the song can be deleted.
	require.NoError(t, NewTrackService(db).Remove(ctx, track.ID))
	assert.NoError(t, songs.Remove(ctx, track.SongID))
}

func TestMovieRemoveCascades(t *testing.T) {
	db := newTestDB(t)
	track := seedTrack(t, db, "Titles underscore")
	ctx := context.Background()

	require.NoError(t, NewMovieService(db).Remove(ctx, track.Scene.MovieID))

	var scenes, tracks, licenses int64
	require.NoError(t, db.Model(&models.Scene{}).Count(&scenes).Error)
	require.NoError(t, db.Model(&models.Track{}).Count(&tracks).Error)
	require.NoError(t, db.Model(&models.License{}).Count(&licenses).Error)
	assert.Zero(t, scenes)
	assert.Zero(t, tracks)
	assert.Zero(t, licenses)

	// The song survives the cascade.
	var songs int64
	require.NoError(t, db.Model(&models.Song{}).Count(&songs).Error)
	assert.Equal(t, int64(1), songs)
}

func TestSceneListOrderedBySceneNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	movie, err := NewMovieService(db).Create(ctx, &CreateMovieRequest{Title: "Midnight Harbor"})
	require.NoError(t, err)

	scenes := NewSceneService(db)
	for _, n := range []int{14, 1, 7} {
		_, err := scenes.Create(ctx, &CreateSceneRequest{
			Name:        "Scene",
			SceneNumber: n,
			MovieID:     movie.ID,
		})
		require.NoError(t, err)
	}

	ordered, err := scenes.FindByMovie(ctx, movie.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, 1, ordered[0].SceneNumber)
	assert.Equal(t, 7, ordered[1].SceneNumber)
	assert.Equal(t, 14, ordered[2].SceneNumber)
}
