// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/medialicense-backend/internal/broadcast"
	"github.com/javajoker/medialicense-backend/internal/cache"
	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/handlers"
	"github.com/javajoker/medialicense-backend/internal/middleware"
	"github.com/javajoker/medialicense-backend/internal/queue"
	"github.com/javajoker/medialicense-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config, store cache.Store, jobs queue.Queue, broadcaster *broadcast.Broadcaster) *gin.Engine {
	// Initialize services
	summaryCache := services.NewWorkflowSummaryCache(db, store, cfg.Workflow.SummaryCacheKey, time.Duration(cfg.Workflow.SummaryCacheTTL)*time.Second)
	notificationService := services.NewNotificationService(jobs, cfg.Workflow, cfg.Email)
	dispatcher := services.NewTransitionDispatcher(summaryCache, notificationService, broadcaster)

	movieService := services.NewMovieService(db)
	sceneService := services.NewSceneService(db)
	songService := services.NewSongService(db)
	trackService := services.NewTrackService(db)
	licenseService := services.NewLicenseService(db, summaryCache, dispatcher)

	// Initialize handlers
	movieHandler := handlers.NewMovieHandler(movieService, sceneService)
	sceneHandler := handlers.NewSceneHandler(sceneService, trackService)
	songHandler := handlers.NewSongHandler(songService)
	trackHandler := handlers.NewTrackHandler(trackService)
	licenseHandler := handlers.NewLicenseHandler(licenseService)
	streamHandler := handlers.NewStreamHandler(broadcaster)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Movie routes
		movies := v1.Group("/movies")
		{
			movies.GET("", movieHandler.List)
			movies.GET("/:id", movieHandler.Get)
			movies.GET("/:id/scenes", movieHandler.ListScenes)
			movies.POST("", middleware.MutationRateLimit(), movieHandler.Create)
			movies.PUT("/:id", middleware.MutationRateLimit(), movieHandler.Update)
			movies.DELETE("/:id", middleware.MutationRateLimit(), movieHandler.Delete)
		}

		// Scene routes
		scenes := v1.Group("/scenes")
		{
			scenes.GET("", sceneHandler.List)
			scenes.GET("/:id", sceneHandler.Get)
			scenes.GET("/:id/tracks", sceneHandler.ListTracks)
			scenes.POST("", middleware.MutationRateLimit(), sceneHandler.Create)
			scenes.PUT("/:id", middleware.MutationRateLimit(), sceneHandler.Update)
			scenes.DELETE("/:id", middleware.MutationRateLimit(), sceneHandler.Delete)
		}

		// Song routes
		songs := v1.Group("/songs")
		{
			songs.GET("", songHandler.List)
			songs.GET("/:id", songHandler.Get)
			songs.POST("", middleware.MutationRateLimit(), songHandler.Create)
			songs.PUT("/:id", middleware.MutationRateLimit(), songHandler.Update)
			songs.DELETE("/:id", middleware.MutationRateLimit(), songHandler.Delete)
		}

		// Track routes
		tracks := v1.Group("/tracks")
		{
			tracks.GET("", trackHandler.List)
			tracks.GET("/:id", trackHandler.Get)
			tracks.GET("/:id/license", licenseHandler.GetByTrack)
			tracks.POST("", middleware.MutationRateLimit(), trackHandler.Create)
			tracks.PUT("/:id", middleware.MutationRateLimit(), trackHandler.Update)
			tracks.DELETE("/:id", middleware.MutationRateLimit(), trackHandler.Delete)
		}

		// License workflow routes
		licenses := v1.Group("/licenses")
		{
			licenses.GET("", licenseHandler.List)
			licenses.GET("/events", streamHandler.Events)
			licenses.GET("/workflow/summary", licenseHandler.WorkflowSummary)
			licenses.GET("/status/:status", licenseHandler.ListByStatus)
			licenses.GET("/:id", licenseHandler.Get)
			licenses.POST("", middleware.MutationRateLimit(), licenseHandler.Create)
			licenses.PUT("/:id", middleware.MutationRateLimit(), licenseHandler.Update)
			licenses.PATCH("/:id/status", middleware.MutationRateLimit(), licenseHandler.UpdateStatus)
			licenses.DELETE("/:id", middleware.MutationRateLimit(), licenseHandler.Delete)
		}
	}

	return r
}
