package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tourproof/internal/api/controllers"
	"tourproof/pkg/middleware"
)

type RouterParams struct {
	fx.In

	Logger  *zap.Logger
	Limiter *middleware.RateLimiter
	Limits  RateLimits

	Accounts      *controllers.AccountController
	Tours         *controllers.TourController
	Rewards       *controllers.RewardController
	Admin         *controllers.AdminController
	Notifications *controllers.NotificationController
	Health        *controllers.HealthController
}

type RateLimits struct {
	RequestsPerMinute int
}

func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	limited := middleware.RateLimit(p.Limiter, p.Limits.RequestsPerMinute)
	auth := middleware.JWTAuthMiddleware()

	r.GET("/healthz", p.Health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accounts := r.Group("/accounts")
	accounts.POST("/register", limited, p.Accounts.Register)
	accounts.POST("/login", limited, p.Accounts.Login)
	accounts.POST("/forgot-password", limited, p.Accounts.ForgotPassword)
	accounts.POST("/reset-password", limited, p.Accounts.ResetPassword)
	accounts.GET("/me", auth, p.Accounts.Me)
	accounts.POST("/stake", auth, limited, p.Accounts.DepositStake)

	tours := r.Group("/tours")
	tours.GET("", p.Tours.ListTours)
	tours.GET("/:id", p.Tours.GetTour)
	tours.GET("/:id/check-ins", p.Tours.ListCheckIns)
	tours.POST("", auth, limited, p.Tours.CreateTour)
	tours.PUT("/:id", auth, limited, p.Tours.UpdateTour)
	tours.POST("/:id/deactivate", auth, limited, p.Tours.DeactivateTour)
	tours.POST("/:id/upvote", auth, limited, p.Tours.Upvote)
	tours.GET("/:id/votes/me", auth, p.Tours.MyVote)
	tours.POST("/:id/check-ins", auth, limited, p.Tours.CheckIn)

	rewards := r.Group("/rewards")
	rewards.GET("/me", auth, p.Rewards.MyBalance)
	rewards.GET("/:accountId", p.Rewards.GetBalance)

	admin := r.Group("/admin", auth)
	admin.GET("/settings", p.Admin.GetSettings)
	admin.PUT("/vote-threshold", limited, p.Admin.SetVoteThreshold)
	admin.POST("/pause", limited, p.Admin.Pause)
	admin.POST("/resume", limited, p.Admin.Resume)

	r.GET("/notifications", p.Notifications.ListNotifications)
}
