package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"tourproof/internal/models/db_models"
	"tourproof/internal/models/request_models"
	mem "tourproof/pkg/memcache"
	"tourproof/pkg/utils"
)

type sentMail struct {
	to, subject, body, token string
}

type fakeMailService struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailService) SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailService) SendMailToResetPassword(email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: email, subject: "reset", token: token})
	return nil
}

func (f *fakeMailService) all() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

func newTestAccountService(t *testing.T) (AccountServiceInterface, *testEnv, *fakeMailService) {
	t.Helper()
	utils.ConfigureJWT("test-secret")
	env := setupTestEnv(t, 3)
	mail := &fakeMailService{}
	svc := NewAccountService(env.accounts, mail, mem.NewResetTokens(), AdminEmails{"root@tourproof.app"}, zap.NewNop())
	return svc, env, mail
}

func TestCreateAccountAndLogin(t *testing.T) {
	svc, env, _ := newTestAccountService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Alice", Email: "alice@example.com", Password: "secret1"}))
	err := svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Alice", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	claims, err := utils.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, db_models.RoleUser, claims.Role)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	account, err := env.accounts.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.NotEqual(t, "secret1", account.PasswordHash)
}

func TestAdminEmailsRegisterAsAdministrators(t *testing.T) {
	svc, env, _ := newTestAccountService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Root", Email: "ROOT@tourproof.app", Password: "secret1"}))
	account, err := env.accounts.FindByEmail(ctx, "ROOT@tourproof.app")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, db_models.RoleAdmin, account.Role)

	require.NoError(t, env.admin.PauseOperations(ctx, account.ID))
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, _, mail := newTestAccountService(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Bob", Email: "bob@example.com", Password: "secret1"}))

	require.NoError(t, svc.ForgotPassword(ctx, "missing@example.com"))
	assert.Empty(t, mail.all())

	require.NoError(t, svc.ForgotPassword(ctx, "bob@example.com"))
	sent := mail.all()
	require.Len(t, sent, 1)
	token := sent[0].token
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(ctx, request_models.ResetPasswordRequest{Token: token, NewPassword: "secret2"}))
	err := svc.ResetPassword(ctx, request_models.ResetPasswordRequest{Token: token, NewPassword: "secret3"})
	assert.ErrorIs(t, err, utils.ErrInvalidResetToken)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "bob@example.com", Password: "secret2"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestDepositStake(t *testing.T) {
	svc, env, _ := newTestAccountService(t)
	ctx := context.Background()
	id := env.newAccount(t, db_models.RoleUser)

	_, err := svc.DepositStake(ctx, id, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidParameters)
	_, err = svc.DepositStake(ctx, uuid.New(), 5)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)

	stake, err := svc.DepositStake(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stake)

	stake, err = svc.StakeOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stake)

	account, err := svc.GetAccount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), account.Stake)
}
