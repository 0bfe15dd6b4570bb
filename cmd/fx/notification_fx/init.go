package notification_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tourproof/internal/config"
	"tourproof/internal/repositories"
	"tourproof/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		asSubscriber(services.NewLogSubscriber),
		asSubscriber(services.NewMetricsSubscriber),
		asSubscriber(provideMailSubscriber),
		fx.Annotate(
			provideNotificationService,
			fx.ParamTags(``, ``, `group:"subscribers"`),
		),
	),
)

func asSubscriber(f interface{}) interface{} {
	return fx.Annotate(
		f,
		fx.As(new(services.Subscriber)),
		fx.ResultTags(`group:"subscribers"`),
	)
}

func provideMailSubscriber(
	accounts repositories.AccountRepository,
	mail services.IMailService,
	cfg *config.Config,
	logger *zap.Logger,
) *services.MailSubscriber {
	return services.NewMailSubscriber(accounts, mail, cfg.SMTP.AppBaseURL, logger)
}

func provideNotificationService(db *gorm.DB, logger *zap.Logger, subscribers []services.Subscriber) services.NotificationServiceInterface {
	return services.NewNotificationService(repositories.NewNotificationRepository(db), logger, subscribers)
}
