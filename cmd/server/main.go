// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/medialicense-backend/internal/broadcast"
	"github.com/javajoker/medialicense-backend/internal/cache"
	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/database"
	"github.com/javajoker/medialicense-backend/internal/queue"
	"github.com/javajoker/medialicense-backend/internal/router"
	"github.com/javajoker/medialicense-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Cache and queue back onto redis when available, with in-process
	// fallbacks for single-node deployments.
	var store cache.Store
	var jobs queue.Queue
	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		store = cache.NewRedisStore(client)
		jobs = queue.NewRedisQueue(client, cfg.Workflow.NotificationQueue, time.Duration(cfg.Workflow.WorkerPollMs)*time.Millisecond)
	} else {
		log.Println("Redis disabled; using in-process cache and queue")
		store = cache.NewMemoryStore()
		jobs = queue.NewMemoryQueue()
	}

	broadcaster := broadcast.New(cfg.Workflow.SubscriberBufferLen)

	// Notification worker runs in-process alongside the API.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker := services.NewNotificationWorker(jobs, services.NewSMTPSender(cfg.Email), cfg.Workflow)
	go func() {
		if err := worker.Run(workerCtx); err != nil {
			log.Println("Notification worker stopped:", err)
		}
	}()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(db, cfg, store, jobs, broadcaster)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopWorker()

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
