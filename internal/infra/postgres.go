package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reviewpulse/internal/models/db_models"
)

func InitPostgresql(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := db.AutoMigrate(
		&db_models.ReviewLink{},
		&db_models.Review{},
		&db_models.Product{},
		&db_models.Brand{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}
