package main

import (
	"log"

	"github.com/onflows/telemetry-backend-go/internal/api"
	"github.com/onflows/telemetry-backend-go/internal/config"
	"github.com/onflows/telemetry-backend-go/internal/database"
	"github.com/onflows/telemetry-backend-go/internal/handler"
	"github.com/onflows/telemetry-backend-go/internal/repository"
	"github.com/onflows/telemetry-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	activityRepo := repository.NewActivityRepository(db)
	rowRepo := repository.NewRowRepository(db)
	artifactRepo := repository.NewArtifactRepository(db)
	windowRepo := repository.NewWindowRepository(db)

	ingestService := service.NewIngestService(activityRepo, rowRepo, artifactRepo, windowRepo, cfg.Thresholds)
	activityService := service.NewActivityService(activityRepo, rowRepo, artifactRepo, windowRepo)
	activityHandler := handler.NewActivityHandler(ingestService, activityService)

	router := api.SetupRouter(cfg, activityHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
