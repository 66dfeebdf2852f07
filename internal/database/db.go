package database

import (
	"log"
	"os"
	"time"

	"go-bar-pos/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database chosen by DB_DRIVER (sqlite by default,
// mysql for a shared back-of-house server) and syncs the schema.
func Connect() {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	var err error
	switch driver {
	case "mysql":
		if dsn == "" {
			log.Fatal("❌ Error: DB_DSN not set. Please configure your database.")
		}
		// Wait for the DB to be ready
		for i := 0; i < 5; i++ {
			DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
	default:
		if dsn == "" {
			dsn = "bar-pos.db"
		}
		DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("✅ Successfully connected to the database!")

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	log.Println("✅ Database Schema Synced!")
}

// Migrate syncs the schema on any gorm connection (tests use this with
// an in-memory sqlite database).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.HappyHourRule{},
		&models.Tab{},
		&models.TabItem{},
		&models.Sale{},
		&models.SaleItem{},
	)
}
