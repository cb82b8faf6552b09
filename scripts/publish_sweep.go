// Manually trigger the scheduled-publish sweep.
//
// The sweep runs inside the main application once a minute; this script is
// for one-off runs, e.g. after importing courses with publish dates already
// in the past.
//
// Usage: go run scripts/publish_sweep.go

package main

import (
	"log"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	courseRepo := repository.NewCourseRepository(db)
	storage := service.NewStorageService(cfg)
	courseService := service.NewCourseService(courseRepo, storage, rdb)

	log.Println("Running scheduled-publish sweep...")
	if err := courseService.ProcessScheduledPublishes(); err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Println("Done")
}
