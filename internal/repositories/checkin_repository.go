package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tourproof/internal/models/db_models"
)

type CheckInRepository interface {
	Exists(ctx context.Context, tourID uint64, participant uuid.UUID) (bool, error)
	Insert(ctx context.Context, checkIn *db_models.CheckIn) error
	ListByTour(ctx context.Context, tourID uint64) ([]db_models.CheckIn, error)
}

type checkInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Exists(ctx context.Context, tourID uint64, participant uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.CheckIn{}).
		Where("tour_id = ? AND participant_id = ?", tourID, participant).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("lookup check-in on tour %d: %w", tourID, err)
	}
	return count > 0, nil
}

func (r *checkInRepository) Insert(ctx context.Context, checkIn *db_models.CheckIn) error {
	if err := r.db.WithContext(ctx).Create(checkIn).Error; err != nil {
		return fmt.Errorf("record check-in on tour %d: %w", checkIn.TourID, err)
	}
	return nil
}

func (r *checkInRepository) ListByTour(ctx context.Context, tourID uint64) ([]db_models.CheckIn, error) {
	var checkIns []db_models.CheckIn
	err := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("id ASC").
		Find(&checkIns).Error
	if err != nil {
		return nil, fmt.Errorf("list check-ins of tour %d: %w", tourID, err)
	}
	return checkIns, nil
}
