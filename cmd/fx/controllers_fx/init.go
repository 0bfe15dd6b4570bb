package controllers_fx

import (
	"go.uber.org/fx"
	"tourproof/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewTourController),
	fx.Provide(controllers.NewRewardController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewNotificationController),
	fx.Provide(controllers.NewHealthController))
