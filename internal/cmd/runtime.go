package cmd

import (
	"fmt"

	"solosolver-be/internal/bootstrap"
	"solosolver-be/internal/config"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/pkg/database"

	gormlogger "gorm.io/gorm/logger"
)

// openContainer connects to the database and wires the same services the
// REST server uses. Recording is synchronous so nothing is lost on exit.
func openContainer() (*bootstrap.Container, error) {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBWithOptions(cfg.Database.Connection, database.Options{
		LogLevel:     gormlogger.Silent,
		MaxOpenConns: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	container, err := bootstrap.NewContainerWithOptions(db, cfg, bootstrap.Options{
		Logger:        logger.NewConsoleLogger(verbose),
		SyncRecording: true,
	})
	if err != nil {
		return nil, err
	}
	return container, nil
}
