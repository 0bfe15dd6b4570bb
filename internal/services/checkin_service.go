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

type CheckInServiceInterface interface {
	CheckIn(ctx context.Context, tourID uint64, participant uuid.UUID, imageRef, claimedLocation string) (CheckInReceipt, error)
	ListCheckIns(ctx context.Context, tourID uint64) ([]response_models.CheckIn, error)
}

// CheckInReceipt reports the balances after both credits of a check-in.
type CheckInReceipt struct {
	CreatorBalance     int64 `json:"creator_balance"`
	ParticipantBalance int64 `json:"participant_balance"`
}

type CheckInService struct {
	runner *ledgerRunner
	ledger repositories.LedgerRepository
	logger *zap.Logger
}

func NewCheckInService(
	ledger repositories.LedgerRepository,
	policy OperationsPolicy,
	locks *mem.KeyLocks,
	notifier NotificationServiceInterface,
	logger *zap.Logger,
) CheckInServiceInterface {
	return &CheckInService{
		runner: newLedgerRunner(ledger, policy, locks, notifier, logger),
		ledger: ledger,
		logger: logger,
	}
}

// CheckIn admits a participant and settles both rewards in one transaction.
// The location claim must match the stored location byte for byte.
func (s *CheckInService) CheckIn(ctx context.Context, tourID uint64, participant uuid.UUID, imageRef, claimedLocation string) (CheckInReceipt, error) {
	var receipt CheckInReceipt
	err := s.runner.run(ctx, runOptions{operation: "check_in", lockKey: tourLockKey(tourID), gated: true},
		func(ctx context.Context, m *mutation) error {
			tour, err := m.tx.Tours().LockByID(ctx, tourID)
			if err != nil {
				return err
			}
			if tour == nil {
				return utils.ErrTourNotFound
			}
			if !tour.Active {
				return utils.ErrTourInactive
			}
			if !tour.Verified {
				return utils.ErrTourNotVerified
			}
			if tour.OwnerID == participant {
				return utils.ErrSelfCheckInForbidden
			}
			checkedIn, err := m.tx.CheckIns().Exists(ctx, tourID, participant)
			if err != nil {
				return err
			}
			if checkedIn {
				return utils.ErrAlreadyCheckedIn
			}
			if claimedLocation != tour.Location {
				return utils.ErrLocationMismatch
			}
			if imageRef == "" {
				return utils.ErrInvalidParameters
			}

			settings := m.settings

			rewards := m.tx.Rewards()
			if err := rewards.LockBalances(ctx, tour.OwnerID, participant); err != nil {
				return err
			}

			checkIn := &db_models.CheckIn{
				TourID:        tourID,
				ParticipantID: participant,
				ImageRef:      imageRef,
				Location:      claimedLocation,
				Status:        db_models.CheckInStatusConfirmed,
			}
			if err := m.tx.CheckIns().Insert(ctx, checkIn); err != nil {
				return err
			}

			creatorBalance, err := rewards.Credit(ctx, tour.OwnerID, settings.CreationPoints)
			if err != nil {
				return err
			}
			participantBalance, err := rewards.Credit(ctx, participant, settings.CheckInPoints)
			if err != nil {
				return err
			}

			m.emit(
				checkInConfirmedEvent(checkIn),
				pointsAwardedEvent(tourID, tour.OwnerID, RoleCreator, settings.CreationPoints, creatorBalance),
				pointsAwardedEvent(tourID, participant, RoleParticipant, settings.CheckInPoints, participantBalance),
			)
			receipt = CheckInReceipt{CreatorBalance: creatorBalance, ParticipantBalance: participantBalance}
			return nil
		})
	if err != nil {
		return CheckInReceipt{}, err
	}
	return receipt, nil
}

func (s *CheckInService) ListCheckIns(ctx context.Context, tourID uint64) ([]response_models.CheckIn, error) {
	tour, err := s.ledger.Tours().FindByID(ctx, tourID)
	if err != nil {
		return nil, readFailed(s.logger, "list_check_ins", err)
	}
	if tour == nil {
		return nil, utils.ErrTourNotFound
	}

	checkIns, err := s.ledger.CheckIns().ListByTour(ctx, tourID)
	if err != nil {
		return nil, readFailed(s.logger, "list_check_ins", err)
	}

	result := make([]response_models.CheckIn, 0, len(checkIns))
	for _, c := range checkIns {
		result = append(result, response_models.CheckIn{
			Participant: c.ParticipantID.String(),
			ImageRef:    c.ImageRef,
			Location:    c.Location,
			Status:      c.Status,
			CheckedInAt: utils.FormatUnixRFC3339(c.CreatedAt),
		})
	}
	return result, nil
}
