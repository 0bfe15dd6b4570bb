package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tourproof/internal/models/db_models"
	"tourproof/internal/models/response_models"
	"tourproof/internal/repositories"
	mem "tourproof/pkg/memcache"
	"tourproof/pkg/utils"
)

type AdminServiceInterface interface {
	SetVoteThreshold(ctx context.Context, caller uuid.UUID, threshold uint64) error
	PauseOperations(ctx context.Context, caller uuid.UUID) error
	ResumeOperations(ctx context.Context, caller uuid.UUID) error
	GetSettings(ctx context.Context) (response_models.LedgerSettings, error)
	Bootstrap(ctx context.Context, defaults LedgerDefaults) (response_models.LedgerSettings, error)
}

// LedgerDefaults seeds the settings row on first start. The point constants
// are fixed from then on.
type LedgerDefaults struct {
	VoteThreshold  uint64
	CreationPoints int64
	CheckInPoints  int64
}

type AdminService struct {
	runner *ledgerRunner
	ledger repositories.LedgerRepository
	policy OperationsPolicy
	logger *zap.Logger
}

func NewAdminService(
	ledger repositories.LedgerRepository,
	policy OperationsPolicy,
	locks *mem.KeyLocks,
	notifier NotificationServiceInterface,
	logger *zap.Logger,
) AdminServiceInterface {
	return &AdminService{
		runner: newLedgerRunner(ledger, policy, locks, notifier, logger),
		ledger: ledger,
		policy: policy,
		logger: logger,
	}
}

func (s *AdminService) authorize(ctx context.Context, operation string, caller uuid.UUID) error {
	isAdmin, err := s.policy.IsAdministrator(ctx, caller)
	if err != nil {
		return s.runner.reject(operation, err)
	}
	if !isAdmin {
		return s.runner.reject(operation, utils.ErrNotAdministrator)
	}
	return nil
}

// SetVoteThreshold replaces the threshold used by future votes. Tours that
// are already verified, or not, keep their flag.
func (s *AdminService) SetVoteThreshold(ctx context.Context, caller uuid.UUID, threshold uint64) error {
	const operation = "set_vote_threshold"
	if err := s.authorize(ctx, operation, caller); err != nil {
		return err
	}
	return s.runner.run(ctx, runOptions{operation: operation, lockKey: lockSettings},
		func(ctx context.Context, m *mutation) error {
			if threshold == 0 {
				return utils.ErrInvalidParameters
			}
			settings, err := m.tx.Settings().Lock(ctx)
			if err != nil {
				return err
			}
			if settings == nil {
				return errSettingsMissing
			}
			previous := settings.VoteThreshold
			settings.VoteThreshold = threshold
			if err := m.tx.Settings().Save(ctx, settings); err != nil {
				return err
			}
			m.emit(thresholdChangedEvent(caller, previous, threshold))
			return nil
		})
}

func (s *AdminService) PauseOperations(ctx context.Context, caller uuid.UUID) error {
	return s.setPaused(ctx, "pause_operations", caller, true)
}

func (s *AdminService) ResumeOperations(ctx context.Context, caller uuid.UUID) error {
	return s.setPaused(ctx, "resume_operations", caller, false)
}

func (s *AdminService) setPaused(ctx context.Context, operation string, caller uuid.UUID, paused bool) error {
	if err := s.authorize(ctx, operation, caller); err != nil {
		return err
	}
	return s.runner.run(ctx, runOptions{operation: operation, lockKey: lockSettings},
		func(ctx context.Context, m *mutation) error {
			settings, err := m.tx.Settings().Lock(ctx)
			if err != nil {
				return err
			}
			if settings == nil {
				return errSettingsMissing
			}
			settings.Paused = paused
			if err := m.tx.Settings().Save(ctx, settings); err != nil {
				return err
			}
			eventType := db_models.EventOperationsResumed
			if paused {
				eventType = db_models.EventOperationsPaused
			}
			m.emit(operationsToggledEvent(eventType, caller))
			return nil
		})
}

func (s *AdminService) GetSettings(ctx context.Context) (response_models.LedgerSettings, error) {
	settings, err := s.ledger.Settings().Get(ctx)
	if err != nil {
		return response_models.LedgerSettings{}, readFailed(s.logger, "get_settings", err)
	}
	if settings == nil {
		return response_models.LedgerSettings{}, readFailed(s.logger, "get_settings", errSettingsMissing)
	}
	return toSettingsResponse(settings), nil
}

// Bootstrap creates the settings row on first start. Later starts keep the
// stored values and only warn when the configured point constants differ.
func (s *AdminService) Bootstrap(ctx context.Context, defaults LedgerDefaults) (response_models.LedgerSettings, error) {
	if defaults.VoteThreshold == 0 || defaults.CreationPoints <= 0 || defaults.CheckInPoints <= 0 {
		return response_models.LedgerSettings{}, utils.ErrInvalidParameters
	}

	settings, created, err := s.ledger.Settings().Bootstrap(ctx, db_models.LedgerSettings{
		VoteThreshold:  defaults.VoteThreshold,
		CreationPoints: defaults.CreationPoints,
		CheckInPoints:  defaults.CheckInPoints,
	})
	if err != nil {
		return response_models.LedgerSettings{}, readFailed(s.logger, "bootstrap", err)
	}

	if created {
		s.logger.Info("ledger settings initialised",
			zap.Uint64("vote_threshold", settings.VoteThreshold),
			zap.Int64("creation_points", settings.CreationPoints),
			zap.Int64("check_in_points", settings.CheckInPoints))
	} else if settings.CreationPoints != defaults.CreationPoints || settings.CheckInPoints != defaults.CheckInPoints {
		s.logger.Warn("configured point constants differ from stored ledger settings; keeping stored values",
			zap.Int64("stored_creation_points", settings.CreationPoints),
			zap.Int64("configured_creation_points", defaults.CreationPoints),
			zap.Int64("stored_check_in_points", settings.CheckInPoints),
			zap.Int64("configured_check_in_points", defaults.CheckInPoints))
	}
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(settings *db_models.LedgerSettings) response_models.LedgerSettings {
	return response_models.LedgerSettings{
		VoteThreshold:    settings.VoteThreshold,
		Paused:           settings.Paused,
		CreationPoints:   settings.CreationPoints,
		CheckInPoints:    settings.CheckInPoints,
		MinimumVoteStake: MinimumVoteStake,
		TourCount:        settings.NextTourID,
	}
}
