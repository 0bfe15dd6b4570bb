package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tourproof/internal/models/db_models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*db_models.LedgerSettings, error)
	Lock(ctx context.Context) (*db_models.LedgerSettings, error)
	// Share reads the row FOR SHARE so a concurrent Lock waits for the reader.
	Share(ctx context.Context) (*db_models.LedgerSettings, error)
	Save(ctx context.Context, settings *db_models.LedgerSettings) error
	// Bootstrap inserts defaults when no settings row exists yet and returns
	// the stored row either way.
	Bootstrap(ctx context.Context, defaults db_models.LedgerSettings) (*db_models.LedgerSettings, bool, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*db_models.LedgerSettings, error) {
	return r.first(r.db.WithContext(ctx))
}

func (r *settingsRepository) Lock(ctx context.Context) (*db_models.LedgerSettings, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *settingsRepository) Share(ctx context.Context) (*db_models.LedgerSettings, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "SHARE"}))
}

func (r *settingsRepository) first(q *gorm.DB) (*db_models.LedgerSettings, error) {
	var settings db_models.LedgerSettings
	err := q.First(&settings, "id = ?", db_models.LedgerSettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *db_models.LedgerSettings) error {
	settings.ID = db_models.LedgerSettingsID
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("save ledger settings: %w", err)
	}
	return nil
}

func (r *settingsRepository) Bootstrap(ctx context.Context, defaults db_models.LedgerSettings) (*db_models.LedgerSettings, bool, error) {
	defaults.ID = db_models.LedgerSettingsID
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaults)
	if result.Error != nil {
		return nil, false, fmt.Errorf("bootstrap ledger settings: %w", result.Error)
	}
	stored, err := r.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, errors.New("bootstrap ledger settings: row missing after insert")
	}
	return stored, result.RowsAffected > 0, nil
}
