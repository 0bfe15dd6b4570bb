package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"tourproof/internal/models/db_models"
	"tourproof/internal/repositories"
	mem "tourproof/pkg/memcache"
	"tourproof/pkg/metrics"
	"tourproof/pkg/utils"
)

const lockTourCreation = "tours:create"
const lockSettings = "settings"

func tourLockKey(id uint64) string {
	return fmt.Sprintf("tour:%d", id)
}

// mutation collects the outbox rows of one ledger operation. Events are
// persisted with the state change and published only after commit.
type mutation struct {
	tx repositories.Ledger
	// settings is the row read by the pause gate. Nil for ungated runs.
	settings *db_models.LedgerSettings
	events   []*db_models.Notification
}

func (m *mutation) emit(events ...*db_models.Notification) {
	m.events = append(m.events, events...)
}

// ledgerRunner gives every mutating ledger operation the same shape: pause
// gate, keyed lock, one transaction, outbox append, publish after commit.
type ledgerRunner struct {
	ledger   repositories.LedgerRepository
	policy   OperationsPolicy
	locks    *mem.KeyLocks
	notifier NotificationServiceInterface
	metrics  *metrics.LedgerMetrics
	logger   *zap.Logger
}

func newLedgerRunner(
	ledger repositories.LedgerRepository,
	policy OperationsPolicy,
	locks *mem.KeyLocks,
	notifier NotificationServiceInterface,
	logger *zap.Logger,
) *ledgerRunner {
	return &ledgerRunner{
		ledger:   ledger,
		policy:   policy,
		locks:    locks,
		notifier: notifier,
		metrics:  metrics.Ledger(),
		logger:   logger,
	}
}

type runOptions struct {
	operation string
	lockKey   string
	gated     bool
	// exclusiveSettings takes the settings row FOR UPDATE instead of FOR SHARE.
	exclusiveSettings bool
}

// gateSettings re-reads the pause flag under a row lock. PauseOperations locks
// the same row, so a pause either waits for this transaction or is seen by it.
func gateSettings(ctx context.Context, tx repositories.Ledger, exclusive bool) (*db_models.LedgerSettings, error) {
	read := tx.Settings().Share
	if exclusive {
		read = tx.Settings().Lock
	}
	settings, err := read(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, errSettingsMissing
	}
	if settings.Paused {
		return nil, utils.ErrOperationsPaused
	}
	return settings, nil
}

func (r *ledgerRunner) run(ctx context.Context, opts runOptions, fn func(ctx context.Context, m *mutation) error) error {
	if opts.gated {
		enabled, err := r.policy.OperationsEnabled(ctx)
		if err != nil {
			return r.reject(opts.operation, err)
		}
		if !enabled {
			return r.reject(opts.operation, utils.ErrOperationsPaused)
		}
	}

	unlock := r.locks.Lock(opts.lockKey)
	defer unlock()

	var committed []*db_models.Notification
	err := r.ledger.WithinTransaction(ctx, func(tx repositories.Ledger) error {
		m := &mutation{tx: tx}
		if opts.gated {
			settings, err := gateSettings(ctx, tx, opts.exclusiveSettings)
			if err != nil {
				return err
			}
			m.settings = settings
		}
		if err := fn(ctx, m); err != nil {
			return err
		}
		if err := tx.Notifications().Append(ctx, m.events); err != nil {
			return err
		}
		committed = m.events
		return nil
	})
	if err != nil {
		return r.reject(opts.operation, err)
	}

	r.notifier.Publish(ctx, committed)
	return nil
}

// reject records the failure and collapses unknown errors into
// utils.ErrDatabaseError after logging them.
func (r *ledgerRunner) reject(operation string, err error) error {
	if utils.ClassOf(err) == utils.ClassInternal && !errors.Is(err, utils.ErrDatabaseError) {
		r.logger.Error("ledger operation failed",
			zap.String("operation", operation),
			zap.Error(err))
		err = utils.ErrDatabaseError
	}
	r.metrics.ObserveRejection(operation, utils.ErrorCode(err))
	return err
}

// readFailed is the read-path counterpart of reject.
func readFailed(logger *zap.Logger, operation string, err error) error {
	logger.Error("ledger read failed",
		zap.String("operation", operation),
		zap.Error(err))
	return utils.ErrDatabaseError
}
