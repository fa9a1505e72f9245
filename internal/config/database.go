package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/interview-coach/internal/models"
)

// interviewLogIndexes back the case-insensitive candidate lookup and the
// newest-first ordering of the postgres log store.
var interviewLogIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_interview_logs_candidate_lower ON interview_logs (LOWER(candidate_name))`,
	`CREATE INDEX IF NOT EXISTS idx_interview_logs_order ON interview_logs (created_at DESC, timestamp DESC)`,
}

// InitDatabase opens the postgres log store. Only used when LOG_BACKEND=postgres.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("✅ Database connected (%s:%s/%s)\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := MigrateInterviewLogs(db); err != nil {
		return nil, err
	}
	return db, nil
}

// MigrateInterviewLogs creates or updates the interview_logs table and its
// lookup indexes.
func MigrateInterviewLogs(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.InterviewLog{}); err != nil {
		return fmt.Errorf("failed to migrate interview_logs: %w", err)
	}

	for _, stmt := range interviewLogIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create interview_logs index: %w", err)
		}
	}

	var count int64
	if err := db.Model(&models.InterviewLog{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count interview logs: %w", err)
	}
	log.Printf("✅ Database migration completed (%d interview logs)\n", count)
	return nil
}
