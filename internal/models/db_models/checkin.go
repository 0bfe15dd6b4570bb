package db_models

import "github.com/google/uuid"

const CheckInStatusConfirmed = "confirmed"

// CheckIn is both the admission guard (unique tour/participant pair) and the
// ordered log entry; the auto-increment id gives insertion order.
type CheckIn struct {
	ID            uint64    `gorm:"primaryKey"`
	TourID        uint64    `gorm:"not null;uniqueIndex:idx_check_in_tour_participant"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_check_in_tour_participant"`
	ImageRef      string    `gorm:"not null"`
	Location      string    `gorm:"not null"`
	Status        string    `gorm:"not null"`
	CreatedAt     int64     `gorm:"autoCreateTime"`
}
