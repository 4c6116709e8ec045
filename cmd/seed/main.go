// cmd/seed/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/medialicense-backend/internal/broadcast"
	"github.com/javajoker/medialicense-backend/internal/cache"
	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/database"
	"github.com/javajoker/medialicense-backend/internal/queue"
	"github.com/javajoker/medialicense-backend/internal/services"
)

// Seeds a small catalog for local development: one movie, two scenes,
// three songs, four tracks, and a few licenses advanced through the
// workflow so the summary endpoint has something to show.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Seeding goes through the same services the API uses, with
	// in-process side-effect adapters so no redis or SMTP is needed.
	summaryCache := services.NewWorkflowSummaryCache(db, cache.NewMemoryStore(), cfg.Workflow.SummaryCacheKey, time.Duration(cfg.Workflow.SummaryCacheTTL)*time.Second)
	notifications := services.NewNotificationService(queue.NewMemoryQueue(), cfg.Workflow, cfg.Email)
	dispatcher := services.NewTransitionDispatcher(summaryCache, notifications, broadcast.New(cfg.Workflow.SubscriberBufferLen))

	movies := services.NewMovieService(db)
	scenes := services.NewSceneService(db)
	songs := services.NewSongService(db)
	tracks := services.NewTrackService(db)
	licenses := services.NewLicenseService(db, summaryCache, dispatcher)

	ctx := context.Background()

	release := time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)
	movie, err := movies.Create(ctx, &services.CreateMovieRequest{
		Title:       "Midnight Harbor",
		Description: "A dockworker uncovers a smuggling ring over one long summer night.",
		Director:    "R. Calloway",
		Producer:    "Harbor Light Pictures",
		ReleaseDate: &release,
		Status:      "post_production",
	})
	if err != nil {
		log.Fatal("Failed to seed movie:", err)
	}

	openingStart, openingEnd := 0, 240
	opening, err := scenes.Create(ctx, &services.CreateSceneRequest{
		Name:           "Opening Titles",
		Description:    "Aerial shots of the harbor at dusk.",
		SceneNumber:    1,
		StartTimestamp: &openingStart,
		EndTimestamp:   &openingEnd,
		MovieID:        movie.ID,
	})
	if err != nil {
		log.Fatal("Failed to seed scene:", err)
	}

	chaseStart, chaseEnd := 3600, 3900
	chase, err := scenes.Create(ctx, &services.CreateSceneRequest{
		Name:           "Warehouse Chase",
		Description:    "Foot chase through the container yard.",
		SceneNumber:    14,
		StartTimestamp: &chaseStart,
		EndTimestamp:   &chaseEnd,
		MovieID:        movie.ID,
	})
	if err != nil {
		log.Fatal("Failed to seed scene:", err)
	}

	type songSeed struct {
		title, artist, holder string
		duration              int
	}
	songIDs := make(map[string]uuid.UUID)
	for _, s := range []songSeed{
		{"Tidewater", "The Gaslight Quartet", "Northside Publishing", 214},
		{"Sodium Lights", "Mara Venn", "Venn Music Ltd", 187},
		{"Container Yard", "Oscillate", "Oscillate Self-Released", 322},
	} {
		song, err := songs.Create(ctx, &services.CreateSongRequest{
			Title:        s.title,
			Artist:       s.artist,
			Duration:     &s.duration,
			RightsHolder: s.holder,
		})
		if err != nil {
			log.Fatal("Failed to seed song:", err)
		}
		songIDs[s.title] = song.ID
	}

	type trackSeed struct {
		name       string
		start, end int
		scene      uuid.UUID
		song       string
		// workflow path to walk after creation
		path []string
	}
	for _, t := range []trackSeed{
		{"Titles underscore", 0, 120, opening.ID, "Tidewater", []string{"in_review", "approved"}},
		{"Dusk montage", 120, 240, opening.ID, "Sodium Lights", []string{"in_review"}},
		{"Chase percussion", 3600, 3780, chase.ID, "Container Yard", []string{"in_review", "negotiating"}},
		{"Chase outro", 3780, 3900, chase.ID, "Tidewater", nil},
	} {
		track, err := tracks.Create(ctx, &services.CreateTrackRequest{
			Name:      t.name,
			StartTime: t.start,
			EndTime:   t.end,
			SceneID:   t.scene,
			SongID:    songIDs[t.song],
		})
		if err != nil {
			log.Fatal("Failed to seed track:", err)
		}

		for _, status := range t.path {
			if _, err := licenses.UpdateStatus(ctx, track.License.ID, &services.UpdateLicenseStatusRequest{
				Status:    status,
				ChangedBy: "seed",
			}); err != nil {
				log.Fatal("Failed to advance seeded license:", err)
			}
		}
	}

	summary, err := licenses.GetWorkflowSummary(ctx)
	if err != nil {
		log.Fatal("Failed to read workflow summary:", err)
	}
	log.Printf("Seed complete; workflow summary: %v", summary)
}
