package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"tourproof/internal/models/db_models"
	mem "tourproof/pkg/memcache"
	"tourproof/pkg/utils"
)

func TestPauseBlocksMutationsButNotReads(t *testing.T) {
	env := setupTestEnv(t, 3)
	ctx := context.Background()
	admin := env.newAccount(t, db_models.RoleAdmin)
	owner := uuid.New()

	tourID, err := env.tours.CreateTour(ctx, owner, "Qm1", "Paris")
	require.NoError(t, err)

	require.NoError(t, env.admin.PauseOperations(ctx, admin))

	_, err = env.tours.CreateTour(ctx, owner, "Qm2", "Lyon")
	assert.ErrorIs(t, err, utils.ErrOperationsPaused)
	_, err = env.votes.Upvote(ctx, tourID, uuid.New(), 1)
	assert.ErrorIs(t, err, utils.ErrOperationsPaused)
	_, err = env.checkIns.CheckIn(ctx, tourID, uuid.New(), "QmX", "Paris")
	assert.ErrorIs(t, err, utils.ErrOperationsPaused)
	assert.ErrorIs(t, env.tours.UpdateTour(ctx, tourID, owner, "Qm3", "Nice"), utils.ErrOperationsPaused)
	assert.ErrorIs(t, env.tours.DeactivateTour(ctx, tourID, owner), utils.ErrOperationsPaused)

	_, err = env.tours.GetTour(ctx, tourID)
	assert.NoError(t, err)
	_, err = env.rewards.GetBalance(ctx, owner)
	assert.NoError(t, err)

	settings, err := env.admin.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.Paused)

	// admin operations are not gated by the pause
	require.NoError(t, env.admin.SetVoteThreshold(ctx, admin, 4))
	require.NoError(t, env.admin.ResumeOperations(ctx, admin))

	id, err := env.tours.CreateTour(ctx, owner, "Qm2", "Lyon")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	assert.Equal(t, 1, env.recorder.count(db_models.EventOperationsPaused))
	assert.Equal(t, 1, env.recorder.count(db_models.EventOperationsResumed))
}

func TestAdminOperationsRequireAdministrator(t *testing.T) {
	env := setupTestEnv(t, 3)
	ctx := context.Background()
	user := env.newAccount(t, db_models.RoleUser)

	assert.ErrorIs(t, env.admin.PauseOperations(ctx, user), utils.ErrNotAdministrator)
	assert.ErrorIs(t, env.admin.ResumeOperations(ctx, user), utils.ErrNotAdministrator)
	assert.ErrorIs(t, env.admin.SetVoteThreshold(ctx, user, 10), utils.ErrNotAdministrator)
	assert.ErrorIs(t, env.admin.PauseOperations(ctx, uuid.New()), utils.ErrNotAdministrator)

	settings, err := env.admin.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.Paused)
	assert.Equal(t, uint64(3), settings.VoteThreshold)
}

func TestSetVoteThreshold(t *testing.T) {
	env := setupTestEnv(t, 3)
	ctx := context.Background()
	admin := env.newAccount(t, db_models.RoleAdmin)

	assert.ErrorIs(t, env.admin.SetVoteThreshold(ctx, admin, 0), utils.ErrInvalidParameters)
	require.NoError(t, env.admin.SetVoteThreshold(ctx, admin, 7))

	settings, err := env.admin.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), settings.VoteThreshold)
	assert.Equal(t, MinimumVoteStake, settings.MinimumVoteStake)
	assert.Equal(t, 1, env.recorder.count(db_models.EventThresholdChanged))
}

func TestBootstrapKeepsStoredConstants(t *testing.T) {
	env := setupTestEnv(t, 3)
	ctx := context.Background()

	settings, err := env.admin.Bootstrap(ctx, LedgerDefaults{VoteThreshold: 9, CreationPoints: 100, CheckInPoints: 50})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), settings.VoteThreshold)
	assert.Equal(t, testCreationPoints, settings.CreationPoints)
	assert.Equal(t, testCheckInPoints, settings.CheckInPoints)

	_, err = env.admin.Bootstrap(ctx, LedgerDefaults{})
	assert.ErrorIs(t, err, utils.ErrInvalidParameters)
}

type staleEnabledPolicy struct {
	OperationsPolicy
}

func (staleEnabledPolicy) OperationsEnabled(context.Context) (bool, error) { return true, nil }

func TestPauseIsRecheckedInsideTransaction(t *testing.T) {
	env := setupTestEnv(t, 1)
	ctx := context.Background()
	admin := env.newAccount(t, db_models.RoleAdmin)
	owner := uuid.New()
	tourID := env.verifiedTour(t, owner)

	// the policy answers from before the pause committed
	policy := staleEnabledPolicy{OperationsPolicy: NewSettingsPolicy(env.ledger.Settings(), env.accounts)}
	locks := mem.NewKeyLocks()
	logger := zap.NewNop()
	tours := NewTourService(env.ledger, policy, locks, env.notifier, logger)
	votes := NewVoteService(env.ledger, policy, locks, env.notifier, logger)
	checkIns := NewCheckInService(env.ledger, policy, locks, env.notifier, logger)

	require.NoError(t, env.admin.PauseOperations(ctx, admin))
	env.recorder.reset()

	_, err := tours.CreateTour(ctx, owner, "Qm2", "Lyon")
	assert.ErrorIs(t, err, utils.ErrOperationsPaused)
	_, err = votes.Upvote(ctx, tourID, uuid.New(), 1)
	assert.ErrorIs(t, err, utils.ErrOperationsPaused)
	_, err = checkIns.CheckIn(ctx, tourID, uuid.New(), "QmX", "Paris")
	assert.ErrorIs(t, err, utils.ErrOperationsPaused)

	tour, err := env.tours.GetTour(ctx, tourID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tour.Upvotes)
	balance, err := env.rewards.GetBalance(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, balance)
	assert.Empty(t, env.recorder.types())

	require.NoError(t, env.admin.ResumeOperations(ctx, admin))
	_, err = votes.Upvote(ctx, tourID, uuid.New(), 1)
	assert.NoError(t, err)
}
