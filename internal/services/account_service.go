package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tourproof/internal/models/db_models"
	"tourproof/internal/models/request_models"
	"tourproof/internal/models/response_models"
	"tourproof/internal/repositories"
	mem "tourproof/pkg/memcache"
	"tourproof/pkg/utils"
)

const resetTokenTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	GetAccount(ctx context.Context, id uuid.UUID) (response_models.AccountResponse, error)
	DepositStake(ctx context.Context, id uuid.UUID, amount int64) (int64, error)
	// StakeOf is what the vote endpoint passes to the vote ledger as the
	// voter's stake.
	StakeOf(ctx context.Context, id uuid.UUID) (int64, error)
}

// AdminEmails lists the addresses that register with the admin role.
type AdminEmails []string

func (a AdminEmails) contains(email string) bool {
	for _, admin := range a {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	mailService IMailService
	resetTokens mem.ResetTokenStore
	adminEmails AdminEmails
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	mailService IMailService,
	resetTokens mem.ResetTokenStore,
	adminEmails AdminEmails,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		mailService: mailService,
		resetTokens: resetTokens,
		adminEmails: adminEmails,
		logger:      logger,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.AccountLoginResponse{}, readFailed(a.logger, "login", err)
	}
	if account == nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("failed to sign token", zap.String("account_id", account.ID.String()), zap.Error(err))
		return response_models.AccountLoginResponse{}, utils.ErrDatabaseError
	}

	return response_models.AccountLoginResponse{Token: token}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return readFailed(a.logger, "create_account", err)
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		a.logger.Error("failed to hash password", zap.Error(err))
		return utils.ErrDatabaseError
	}

	role := db_models.RoleUser
	if a.adminEmails.contains(request.Email) {
		role = db_models.RoleAdmin
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return readFailed(a.logger, "create_account", err)
	}

	a.logger.Info("account created",
		zap.String("account_id", newAccount.ID.String()),
		zap.String("role", role))
	return nil
}

// ForgotPassword mails a single-use reset token. Unknown emails succeed
// silently.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return readFailed(a.logger, "forgot_password", err)
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		a.logger.Error("failed to generate reset token", zap.Error(err))
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mailService.SendMailToResetPassword(account.Email, token); err != nil {
		a.logger.Warn("failed to send reset mail", zap.String("to", account.Email), zap.Error(err))
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return readFailed(a.logger, "reset_password", err)
	}
	if account == nil {
		return utils.ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		a.logger.Error("failed to hash password", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePasswordHash(ctx, account.ID, hashedPassword); err != nil {
		return readFailed(a.logger, "reset_password", err)
	}
	return nil
}

func (a *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return response_models.AccountResponse{}, readFailed(a.logger, "get_account", err)
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}
	return response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
		Stake: account.Stake,
	}, nil
}

func (a *AccountService) DepositStake(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, utils.ErrInvalidParameters
	}
	stake, err := a.accountRepo.AddStake(ctx, id, amount)
	switch {
	case err == nil:
		return stake, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, utils.ErrAccountNotFound
	case errors.Is(err, utils.ErrBalanceOverflow):
		return 0, err
	default:
		return 0, readFailed(a.logger, "deposit_stake", err)
	}
}

func (a *AccountService) StakeOf(ctx context.Context, id uuid.UUID) (int64, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return 0, readFailed(a.logger, "stake_of", err)
	}
	if account == nil {
		return 0, utils.ErrAccountNotFound
	}
	return account.Stake, nil
}
