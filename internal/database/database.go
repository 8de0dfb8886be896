package database

import (
	"fmt"

	"stillpoint/internal/config"
	logging "stillpoint/internal/logging"
	"stillpoint/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.PracticeSession{},
		&models.EmotionalNote{},
		&models.Questionnaire{},
		&models.SelfAssessment{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	sessionIndex := `CREATE INDEX IF NOT EXISTS idx_sessions_query ON practice_sessions (user_id, "timestamp" DESC);`
	if err := DB.Exec(sessionIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on practice sessions", zap.Error(err))
	}
	noteIndex := `CREATE INDEX IF NOT EXISTS idx_notes_query ON emotional_notes (user_id, "timestamp" DESC);`
	if err := DB.Exec(noteIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on emotional notes", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
