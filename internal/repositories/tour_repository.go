package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tourproof/internal/models/db_models"
)

type TourRepository interface {
	Create(ctx context.Context, tour *db_models.Tour) error
	Update(ctx context.Context, tour *db_models.Tour) error

	FindByID(ctx context.Context, id uint64) (*db_models.Tour, error)
	LockByID(ctx context.Context, id uint64) (*db_models.Tour, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Tour, error)
}

type tourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) Create(ctx context.Context, tour *db_models.Tour) error {
	if err := r.db.WithContext(ctx).Create(tour).Error; err != nil {
		return fmt.Errorf("create tour %d: %w", tour.ID, err)
	}
	return nil
}

// Update writes the mutable columns. gorm's Save would treat tour 0 as a new
// record, so the update is keyed explicitly.
func (r *tourRepository) Update(ctx context.Context, tour *db_models.Tour) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Tour{}).
		Where("id = ?", tour.ID).
		Updates(map[string]interface{}{
			"image_ref": tour.ImageRef,
			"location":  tour.Location,
			"upvotes":   tour.Upvotes,
			"verified":  tour.Verified,
			"active":    tour.Active,
		})
	if result.Error != nil {
		return fmt.Errorf("update tour %d: %w", tour.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Read helpers return (nil, nil) when no row is found.

func (r *tourRepository) FindByID(ctx context.Context, id uint64) (*db_models.Tour, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *tourRepository) LockByID(ctx context.Context, id uint64) (*db_models.Tour, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *tourRepository) first(q *gorm.DB, id uint64) (*db_models.Tour, error) {
	var tour db_models.Tour
	err := q.First(&tour, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tour %d: %w", id, err)
	}
	return &tour, nil
}

func (r *tourRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Tour, error) {
	var tours []db_models.Tour
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tours).Error
	if err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}
	return tours, nil
}
