package main

import (
	"stillpoint/internal/config"
	"stillpoint/internal/database"
	logger "stillpoint/internal/logging"
	"stillpoint/internal/models"
	"stillpoint/internal/router"
	"stillpoint/internal/services"

	"go.uber.org/zap"
)

func main() {
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	database.Init(log)

	survey, err := models.LoadSurvey(config.Conf.Survey.Path)
	if err != nil {
		log.Fatal("Failed to load survey definition", zap.Error(err))
	}

	cache := services.NewScoreCache(log)

	r := router.Setup(log, survey, cache)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
