package main

import (
	"flag"
	"fmt"
	"log"

	"tg-moderator/internal/config"
	"tg-moderator/internal/models"
	"tg-moderator/internal/storage"

	"gorm.io/gorm"
)

func main() {
	// Define command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	action := flag.String("action", "migrate", "Action to perform (migrate, reset, status)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := storage.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	db := storage.GetDB()
	if db == nil {
		log.Fatalf("Failed to get database connection")
	}

	// Perform requested action
	switch *action {
	case "migrate":
		if err := migrateDatabase(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed successfully")
	case "reset":
		if err := resetDatabase(db); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		log.Println("Database reset completed successfully")
	case "status":
		if err := showStatus(db); err != nil {
			log.Fatalf("Status check failed: %v", err)
		}
	default:
		log.Fatalf("Unknown action: %s", *action)
	}
}

// migrateDatabase creates or updates the schema
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(&models.UserRecord{}, &models.MessageLog{})
}

// resetDatabase drops and recreates all tables
func resetDatabase(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&models.MessageLog{}, &models.UserRecord{}); err != nil {
		return err
	}
	return migrateDatabase(db)
}

// showStatus prints table existence and row counts
func showStatus(db *gorm.DB) error {
	tables := map[string]interface{}{
		"user_records": &models.UserRecord{},
		"message_logs": &models.MessageLog{},
	}

	for name, model := range tables {
		if !db.Migrator().HasTable(model) {
			fmt.Printf("%s: missing\n", name)
			continue
		}
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			return err
		}
		fmt.Printf("%s: %d rows\n", name, count)
	}
	return nil
}
