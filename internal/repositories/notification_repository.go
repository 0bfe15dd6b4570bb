package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"tourproof/internal/models/db_models"
)

type NotificationRepository interface {
	Append(ctx context.Context, notifications []*db_models.Notification) error
	ListAfter(ctx context.Context, afterID uint64, limit int) ([]db_models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Append(ctx context.Context, notifications []*db_models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		return fmt.Errorf("append notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListAfter(ctx context.Context, afterID uint64, limit int) ([]db_models.Notification, error) {
	var notifications []db_models.Notification
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}
