package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tourproof/internal/config"
	"tourproof/internal/repositories"
	"tourproof/internal/services"
	mem "tourproof/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	mailService services.IMailService,
	resetTokens mem.ResetTokenStore,
	cfg *config.Config,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, mailService, resetTokens, services.AdminEmails(cfg.AdminEmails), logger)
}
