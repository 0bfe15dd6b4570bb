package db_models

import "gorm.io/datatypes"

const (
	EventTourCreated       = "tour.created"
	EventTourUpdated       = "tour.updated"
	EventTourDeactivated   = "tour.deactivated"
	EventTourUpvoted       = "tour.upvoted"
	EventTourVerified      = "tour.verified"
	EventCheckInConfirmed  = "checkin.confirmed"
	EventPointsAwarded     = "points.awarded"
	EventThresholdChanged  = "settings.threshold_changed"
	EventOperationsPaused  = "operations.paused"
	EventOperationsResumed = "operations.resumed"
)

// Notification is an outbox row written in the same transaction as the state
// change it describes.
type Notification struct {
	ID         uint64            `gorm:"primaryKey"`
	Type       string            `gorm:"index;not null"`
	TourID     *uint64           `gorm:"index"`
	Attributes datatypes.JSONMap `gorm:"not null"`
	CreatedAt  int64             `gorm:"autoCreateTime"`
}
