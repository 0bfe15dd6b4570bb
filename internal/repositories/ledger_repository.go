package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Ledger groups the repositories that make up the tour ledger. A Ledger handed
// out by WithinTransaction is bound to that transaction.
type Ledger interface {
	Tours() TourRepository
	Votes() VoteRepository
	CheckIns() CheckInRepository
	Rewards() RewardRepository
	Settings() SettingsRepository
	Notifications() NotificationRepository
}

type LedgerRepository interface {
	Ledger
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Ledger) error) error
}

type gormLedger struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &gormLedger{db: db}
}

func (l *gormLedger) Tours() TourRepository                 { return NewTourRepository(l.db) }
func (l *gormLedger) Votes() VoteRepository                 { return NewVoteRepository(l.db) }
func (l *gormLedger) CheckIns() CheckInRepository           { return NewCheckInRepository(l.db) }
func (l *gormLedger) Rewards() RewardRepository             { return NewRewardRepository(l.db) }
func (l *gormLedger) Settings() SettingsRepository          { return NewSettingsRepository(l.db) }
func (l *gormLedger) Notifications() NotificationRepository { return NewNotificationRepository(l.db) }

func (l *gormLedger) WithinTransaction(ctx context.Context, fn func(tx Ledger) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedger{db: tx})
	})
}
