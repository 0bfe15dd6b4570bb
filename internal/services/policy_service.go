package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"tourproof/internal/models/db_models"
	"tourproof/internal/repositories"
)

var errSettingsMissing = errors.New("ledger settings have not been bootstrapped")

// OperationsPolicy is the access-control collaborator consulted by the ledger
// services. It never mutates anything.
type OperationsPolicy interface {
	OperationsEnabled(ctx context.Context) (bool, error)
	IsAdministrator(ctx context.Context, identity uuid.UUID) (bool, error)
}

// SettingsPolicy answers the pause gate from the settings row and the
// administrator predicate from the account role.
type SettingsPolicy struct {
	settings repositories.SettingsRepository
	accounts repositories.AccountRepository
}

func NewSettingsPolicy(settings repositories.SettingsRepository, accounts repositories.AccountRepository) OperationsPolicy {
	return &SettingsPolicy{
		settings: settings,
		accounts: accounts,
	}
}

func (p *SettingsPolicy) OperationsEnabled(ctx context.Context) (bool, error) {
	settings, err := p.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	if settings == nil {
		return false, errSettingsMissing
	}
	return !settings.Paused, nil
}

func (p *SettingsPolicy) IsAdministrator(ctx context.Context, identity uuid.UUID) (bool, error) {
	account, err := p.accounts.FindById(ctx, identity)
	if err != nil {
		return false, err
	}
	return account != nil && account.Role == db_models.RoleAdmin, nil
}
