package db_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tourproof/internal/config"
	"tourproof/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		db, err = infra.InitSqlite(cfg.SqlitePath)
	case "postgres":
		db, err = infra.InitPostgresql(cfg.PostgresURL)
	default:
		err = fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := infra.AutoMigrate(db); err != nil {
		_ = infra.CloseDatabase(db)
		return nil, err
	}
	logger.Info("database ready", zap.String("driver", cfg.DBDriver))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("closing database")
			return infra.CloseDatabase(db)
		},
	})
	return db, nil
}
