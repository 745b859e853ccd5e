package main

import (
	"log"
	"os"

	"solosolver-be/internal/model"
	"solosolver-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBWithOptions(dsn, database.Options{LogLevel: logger.Info})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Extensions
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	// 4. AutoMigrate
	models := []interface{}{
		&model.Profile{},
		&model.Transaction{},
		&model.AIInteraction{},
		&model.ChatSession{},
		&model.ChatMessage{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Search indexes
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_transaction_history_body_fts
		 ON transaction_history USING GIN (to_tsvector('english', coalesce(complaint_body_text, '')));`,
		`CREATE INDEX IF NOT EXISTS idx_transaction_history_user_ts
		 ON transaction_history (user_id, timestamp_review DESC);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
