package memcache_fx

import (
	"go.uber.org/fx"
	mem "tourproof/pkg/memcache"
)

var Module = fx.Provide(provideResetTokenStore, mem.NewKeyLocks)

func provideResetTokenStore() mem.ResetTokenStore {
	return mem.NewResetTokens()
}
