package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tourproof/internal/repositories"
	mem "tourproof/pkg/memcache"
	"tourproof/pkg/utils"
)

// MinimumVoteStake is the smallest stake that may back a vote.
const MinimumVoteStake int64 = 1

type VoteServiceInterface interface {
	// Upvote returns the tour's vote count and verified flag after the vote.
	Upvote(ctx context.Context, tourID uint64, voter uuid.UUID, voterStake int64) (VoteResult, error)
	HasVoted(ctx context.Context, tourID uint64, voter uuid.UUID) (bool, error)
}

type VoteResult struct {
	Upvotes     uint64 `json:"upvotes"`
	Verified    bool   `json:"verified"`
	VerifiedNow bool   `json:"verified_now"`
}

type VoteService struct {
	runner *ledgerRunner
	ledger repositories.LedgerRepository
	logger *zap.Logger
}

func NewVoteService(
	ledger repositories.LedgerRepository,
	policy OperationsPolicy,
	locks *mem.KeyLocks,
	notifier NotificationServiceInterface,
	logger *zap.Logger,
) VoteServiceInterface {
	return &VoteService{
		runner: newLedgerRunner(ledger, policy, locks, notifier, logger),
		ledger: ledger,
		logger: logger,
	}
}

func (s *VoteService) Upvote(ctx context.Context, tourID uint64, voter uuid.UUID, voterStake int64) (VoteResult, error) {
	var result VoteResult
	err := s.runner.run(ctx, runOptions{operation: "upvote", lockKey: tourLockKey(tourID), gated: true},
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
			if tour.OwnerID == voter {
				return utils.ErrSelfVoteForbidden
			}
			voted, err := m.tx.Votes().Exists(ctx, tourID, voter)
			if err != nil {
				return err
			}
			if voted {
				return utils.ErrAlreadyVoted
			}
			if voterStake < MinimumVoteStake {
				return utils.ErrInsufficientStake
			}

			settings := m.settings

			if err := m.tx.Votes().Insert(ctx, tourID, voter); err != nil {
				return err
			}
			tour.Upvotes++
			// verified is a latch: only the vote that first reaches the
			// threshold in effect sets it, and nothing clears it.
			verifiedNow := !tour.Verified && tour.Upvotes >= settings.VoteThreshold
			if verifiedNow {
				tour.Verified = true
			}
			if err := m.tx.Tours().Update(ctx, tour); err != nil {
				return err
			}

			m.emit(tourUpvotedEvent(tour, voter))
			if verifiedNow {
				m.emit(tourVerifiedEvent(tour, settings.VoteThreshold))
			}
			result = VoteResult{Upvotes: tour.Upvotes, Verified: tour.Verified, VerifiedNow: verifiedNow}
			return nil
		})
	if err != nil {
		return VoteResult{}, err
	}
	return result, nil
}

func (s *VoteService) HasVoted(ctx context.Context, tourID uint64, voter uuid.UUID) (bool, error) {
	tour, err := s.ledger.Tours().FindByID(ctx, tourID)
	if err != nil {
		return false, readFailed(s.logger, "has_voted", err)
	}
	if tour == nil {
		return false, utils.ErrTourNotFound
	}
	voted, err := s.ledger.Votes().Exists(ctx, tourID, voter)
	if err != nil {
		return false, readFailed(s.logger, "has_voted", err)
	}
	return voted, nil
}
