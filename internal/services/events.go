package services

import (
	"strconv"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"tourproof/internal/models/db_models"
)

const (
	RoleCreator     = "creator"
	RoleParticipant = "participant"
)

func newEvent(eventType string, tourID *uint64, attrs map[string]interface{}) *db_models.Notification {
	if tourID != nil {
		attrs["tourId"] = strconv.FormatUint(*tourID, 10)
	}
	return &db_models.Notification{
		Type:       eventType,
		TourID:     tourID,
		Attributes: datatypes.JSONMap(attrs),
	}
}

func tourRef(id uint64) *uint64 { return &id }

func tourCreatedEvent(tour *db_models.Tour) *db_models.Notification {
	return newEvent(db_models.EventTourCreated, tourRef(tour.ID), map[string]interface{}{
		"owner":    tour.OwnerID.String(),
		"location": tour.Location,
		"imageRef": tour.ImageRef,
	})
}

func tourUpdatedEvent(tour *db_models.Tour) *db_models.Notification {
	return newEvent(db_models.EventTourUpdated, tourRef(tour.ID), map[string]interface{}{
		"location": tour.Location,
		"imageRef": tour.ImageRef,
	})
}

func tourDeactivatedEvent(tour *db_models.Tour) *db_models.Notification {
	return newEvent(db_models.EventTourDeactivated, tourRef(tour.ID), map[string]interface{}{
		"owner": tour.OwnerID.String(),
	})
}

func tourUpvotedEvent(tour *db_models.Tour, voter uuid.UUID) *db_models.Notification {
	return newEvent(db_models.EventTourUpvoted, tourRef(tour.ID), map[string]interface{}{
		"voter":   voter.String(),
		"upvotes": strconv.FormatUint(tour.Upvotes, 10),
	})
}

func tourVerifiedEvent(tour *db_models.Tour, threshold uint64) *db_models.Notification {
	return newEvent(db_models.EventTourVerified, tourRef(tour.ID), map[string]interface{}{
		"owner":     tour.OwnerID.String(),
		"upvotes":   strconv.FormatUint(tour.Upvotes, 10),
		"threshold": strconv.FormatUint(threshold, 10),
	})
}

func checkInConfirmedEvent(checkIn *db_models.CheckIn) *db_models.Notification {
	return newEvent(db_models.EventCheckInConfirmed, tourRef(checkIn.TourID), map[string]interface{}{
		"participant": checkIn.ParticipantID.String(),
		"location":    checkIn.Location,
		"imageRef":    checkIn.ImageRef,
	})
}

func pointsAwardedEvent(tourID uint64, recipient uuid.UUID, role string, amount, balance int64) *db_models.Notification {
	return newEvent(db_models.EventPointsAwarded, tourRef(tourID), map[string]interface{}{
		"recipient": recipient.String(),
		"role":      role,
		"amount":    strconv.FormatInt(amount, 10),
		"balance":   strconv.FormatInt(balance, 10),
	})
}

func thresholdChangedEvent(caller uuid.UUID, previous, next uint64) *db_models.Notification {
	return newEvent(db_models.EventThresholdChanged, nil, map[string]interface{}{
		"admin":    caller.String(),
		"previous": strconv.FormatUint(previous, 10),
		"current":  strconv.FormatUint(next, 10),
	})
}

func operationsToggledEvent(eventType string, caller uuid.UUID) *db_models.Notification {
	return newEvent(eventType, nil, map[string]interface{}{
		"admin": caller.String(),
	})
}

// attribute reads a string attribute back from a stored or in-flight event.
func attribute(n *db_models.Notification, key string) string {
	if n == nil || n.Attributes == nil {
		return ""
	}
	value, ok := n.Attributes[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
