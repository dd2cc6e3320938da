package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates the users and todos tables if they are absent and ensures indexes.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.Todo{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// AddIndexes creates the lookup indexes declared on the models when missing.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model any
		name  string
	}{
		{&models.User{}, "Username"},
		{&models.Todo{}, "OwnerID"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.name, err)
		}
		log.Printf("Created index on %s", idx.name)
	}

	return nil
}
