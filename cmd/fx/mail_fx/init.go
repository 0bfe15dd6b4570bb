package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tourproof/internal/config"
	"tourproof/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, logger *zap.Logger) (services.IMailService, error) {
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP_HOST not set, outgoing mail is logged and dropped")
		return services.NewLogMailService(logger), nil
	}

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		FromName:   cfg.SMTP.FromName,
		AppName:    cfg.SMTP.FromName,
		AppBaseURL: cfg.SMTP.AppBaseURL,
	})
}
