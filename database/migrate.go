package database

import (
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the service reads or writes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Reservation{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.SiteSettings{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// lookups by day are the common admin query
	if !db.Migrator().HasIndex(&models.Reservation{}, "idx_reservations_date_time") {
		if err := db.Exec("CREATE INDEX idx_reservations_date_time ON reservations (date, time)").Error; err != nil {
			utils.ErrorLogger.Printf("Error creating reservation date/time index: %v", err)
		}
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
