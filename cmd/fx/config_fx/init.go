package config_fx

import (
	"go.uber.org/fx"
	"tourproof/internal/config"
)

var Module = fx.Provide(config.Load)
