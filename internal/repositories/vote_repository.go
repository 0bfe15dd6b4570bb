package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tourproof/internal/models/db_models"
)

type VoteRepository interface {
	Exists(ctx context.Context, tourID uint64, voter uuid.UUID) (bool, error)
	Insert(ctx context.Context, tourID uint64, voter uuid.UUID) error
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Exists(ctx context.Context, tourID uint64, voter uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.TourVote{}).
		Where("tour_id = ? AND voter_id = ?", tourID, voter).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("lookup vote on tour %d: %w", tourID, err)
	}
	return count > 0, nil
}

// Insert fails on a duplicate (tour, voter) pair through the primary key.
func (r *voteRepository) Insert(ctx context.Context, tourID uint64, voter uuid.UUID) error {
	vote := &db_models.TourVote{TourID: tourID, VoterID: voter}
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		return fmt.Errorf("record vote on tour %d: %w", tourID, err)
	}
	return nil
}
