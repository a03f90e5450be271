package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/winnstorm/reserva-teco/internal/api"
	"github.com/winnstorm/reserva-teco/internal/config"
	"github.com/winnstorm/reserva-teco/internal/database"
	"github.com/winnstorm/reserva-teco/internal/driver/skedway"
	"github.com/winnstorm/reserva-teco/internal/repository"
	"github.com/winnstorm/reserva-teco/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	siteDriver := skedway.New(skedway.Config{
		BaseURL:  cfg.SiteBaseURL,
		Headless: cfg.Headless,
		MaxPages: cfg.MaxPages,
	})

	taskRepo := repository.NewTaskRepository(database.GetDB())
	queue := service.NewQueueService(
		taskRepo,
		service.NewAvailabilityService(siteDriver),
		service.NewBookingService(siteDriver),
		service.QueueOptions{
			Workers:     cfg.WorkerCount,
			Capacity:    cfg.QueueCapacity,
			TaskTimeout: cfg.TaskTimeout,
		},
	)
	if err := queue.Start(); err != nil {
		log.Fatal("Failed to start task queue:", err)
	}

	router := api.SetupRouter(cfg, queue, taskRepo)
	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Stop taking requests first, then drain the queue.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	queue.Stop()
	log.Println("Shutdown complete")
}
