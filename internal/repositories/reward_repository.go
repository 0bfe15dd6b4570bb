package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tourproof/internal/models/db_models"
	"tourproof/pkg/utils"
)

type RewardRepository interface {
	Balance(ctx context.Context, account uuid.UUID) (int64, error)
	// LockBalances creates missing rows and locks all of them in a fixed
	// order, so two transactions touching the same pair cannot deadlock.
	LockBalances(ctx context.Context, accounts ...uuid.UUID) error
	// Credit adds amount and returns the new balance. It fails with
	// utils.ErrBalanceOverflow instead of wrapping.
	Credit(ctx context.Context, account uuid.UUID, amount int64) (int64, error)
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Balance(ctx context.Context, account uuid.UUID) (int64, error) {
	var balance db_models.RewardBalance
	err := r.db.WithContext(ctx).First(&balance, "account_id = ?", account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance.Points, nil
}

func (r *rewardRepository) LockBalances(ctx context.Context, accounts ...uuid.UUID) error {
	ordered := make([]uuid.UUID, 0, len(accounts))
	seen := make(map[uuid.UUID]struct{}, len(accounts))
	for _, id := range accounts {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })

	for _, id := range ordered {
		if err := r.ensure(ctx, id); err != nil {
			return err
		}
		var balance db_models.RewardBalance
		err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&balance, "account_id = ?", id).Error
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}
	}
	return nil
}

func (r *rewardRepository) ensure(ctx context.Context, account uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&db_models.RewardBalance{AccountID: account}).Error
	if err != nil {
		return fmt.Errorf("create balance row: %w", err)
	}
	return nil
}

func (r *rewardRepository) Credit(ctx context.Context, account uuid.UUID, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit: negative amount %d", amount)
	}
	if err := r.ensure(ctx, account); err != nil {
		return 0, err
	}
	var balance db_models.RewardBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&balance, "account_id = ?", account).Error
	if err != nil {
		return 0, fmt.Errorf("lock balance: %w", err)
	}
	if balance.Points > math.MaxInt64-amount {
		return 0, utils.ErrBalanceOverflow
	}
	next := balance.Points + amount
	err = r.db.WithContext(ctx).
		Model(&db_models.RewardBalance{}).
		Where("account_id = ?", account).
		Update("points", next).Error
	if err != nil {
		return 0, fmt.Errorf("credit balance: %w", err)
	}
	return next, nil
}
