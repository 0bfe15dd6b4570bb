package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tourproof/cmd/fx/account_fx"
	"tourproof/cmd/fx/config_fx"
	"tourproof/cmd/fx/controllers_fx"
	"tourproof/cmd/fx/db_fx"
	"tourproof/cmd/fx/ledger_fx"
	"tourproof/cmd/fx/logger_fx"
	"tourproof/cmd/fx/mail_fx"
	"tourproof/cmd/fx/memcache_fx"
	"tourproof/cmd/fx/notification_fx"
	"tourproof/internal/api"
	"tourproof/internal/config"
	"tourproof/pkg/middleware"
	"tourproof/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		notification_fx.Module,
		ledger_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRateLimiter),
		fx.Provide(api.NewRouter),
		fx.Invoke(ConfigureRuntime),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ConfigureRuntime(cfg *config.Config) {
	gin.SetMode(cfg.GinMode)
	utils.ConfigureJWT(cfg.JWTSecret)
}

func ProvideRateLimiter(lc fx.Lifecycle, cfg *config.Config) (*middleware.RateLimiter, api.RateLimits) {
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						limiter.Cleanup(10 * time.Minute)
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(done)
			return nil
		},
	})
	return limiter, api.RateLimits{RequestsPerMinute: cfg.RateLimitPerMinute}
}

func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", server.Addr))
			go func() {
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
