package ledger_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tourproof/internal/config"
	"tourproof/internal/repositories"
	"tourproof/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		provideLedgerRepo,
		provideSettingsRepo,
		provideRewardRepo,
		services.NewSettingsPolicy,
		services.NewTourService,
		services.NewVoteService,
		services.NewCheckInService,
		services.NewRewardService,
		services.NewAdminService,
	),
	fx.Invoke(bootstrapSettings),
)

func provideLedgerRepo(db *gorm.DB) repositories.LedgerRepository {
	return repositories.NewLedgerRepository(db)
}

func provideSettingsRepo(db *gorm.DB) repositories.SettingsRepository {
	return repositories.NewSettingsRepository(db)
}

func provideRewardRepo(db *gorm.DB) repositories.RewardRepository {
	return repositories.NewRewardRepository(db)
}

func bootstrapSettings(lc fx.Lifecycle, admin services.AdminServiceInterface, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := admin.Bootstrap(ctx, services.LedgerDefaults{
				VoteThreshold:  cfg.VoteThreshold,
				CreationPoints: cfg.CreationPoints,
				CheckInPoints:  cfg.CheckInPoints,
			})
			return err
		},
	})
}
