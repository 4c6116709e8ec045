// cmd/worker/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/javajoker/medialicense-backend/internal/cache"
	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/queue"
	"github.com/javajoker/medialicense-backend/internal/services"
)

// Standalone notification worker. Run one or more of these against the
// same redis queue to take email delivery off the API process.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if !cfg.Redis.Enabled {
		log.Fatal("The standalone worker requires redis; set REDIS_ENABLED=true")
	}

	client := cache.NewRedisClient(cfg.Redis)
	defer client.Close()

	jobs := queue.NewRedisQueue(client, cfg.Workflow.NotificationQueue, time.Duration(cfg.Workflow.WorkerPollMs)*time.Millisecond)
	worker := services.NewNotificationWorker(jobs, services.NewSMTPSender(cfg.Email), cfg.Workflow)

	ctx, stop := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down worker...")
		stop()
	}()

	log.Printf("Notification worker polling %s", cfg.Workflow.NotificationQueue)
	if err := worker.Run(ctx); err != nil {
		log.Fatal("Worker stopped:", err)
	}
	log.Println("Worker exited")
}
