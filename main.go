// @title LearnHub API
// @version 1.0
// @description Backend for the LearnHub course platform: authoring, enrollment, checkout and the sequential course player.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"learnhub_backend/internal/app"
	"learnhub_backend/internal/config"
	"learnhub_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
