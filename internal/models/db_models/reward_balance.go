package db_models

import "github.com/google/uuid"

type RewardBalance struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Points    int64     `gorm:"not null;check:points >= 0"`
	UpdatedAt int64     `gorm:"autoUpdateTime"`
}
