package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tourproof/internal/models/db_models"
	"tourproof/pkg/utils"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	// AddStake increases the account stake and returns the new value.
	AddStake(ctx context.Context, id uuid.UUID, amount int64) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	result := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *accountRepository) AddStake(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	var stake int64
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account db_models.Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, "id = ?", id).Error
		if err != nil {
			return err
		}
		if account.Stake > math.MaxInt64-amount {
			return utils.ErrBalanceOverflow
		}
		stake = account.Stake + amount
		return tx.Model(&db_models.Account{}).Where("id = ?", id).Update("stake", stake).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, utils.ErrBalanceOverflow) {
			return 0, err
		}
		return 0, fmt.Errorf("add stake: %w", err)
	}
	return stake, nil
}
