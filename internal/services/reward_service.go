package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tourproof/internal/repositories"
)

type RewardServiceInterface interface {
	// GetBalance returns 0 for identities that were never credited.
	GetBalance(ctx context.Context, identity uuid.UUID) (int64, error)
}

type RewardService struct {
	rewards repositories.RewardRepository
	logger  *zap.Logger
}

func NewRewardService(rewards repositories.RewardRepository, logger *zap.Logger) RewardServiceInterface {
	return &RewardService{
		rewards: rewards,
		logger:  logger,
	}
}

func (s *RewardService) GetBalance(ctx context.Context, identity uuid.UUID) (int64, error) {
	balance, err := s.rewards.Balance(ctx, identity)
	if err != nil {
		return 0, readFailed(s.logger, "get_balance", err)
	}
	return balance, nil
}
