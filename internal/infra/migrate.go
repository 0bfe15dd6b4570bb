package infra

import (
	"fmt"

	"gorm.io/gorm"
	"tourproof/internal/models/db_models"
)

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.LedgerSettings{},
		&db_models.Tour{},
		&db_models.TourVote{},
		&db_models.CheckIn{},
		&db_models.RewardBalance{},
		&db_models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
