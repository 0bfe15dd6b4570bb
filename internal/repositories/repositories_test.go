package repositories

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"tourproof/internal/infra"
	"tourproof/internal/models/db_models"
	"tourproof/pkg/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.InitSqlite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	t.Cleanup(func() { _ = infra.CloseDatabase(db) })
	return db
}

func TestSettingsBootstrapIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(setupTestDB(t))

	first, created, err := repo.Bootstrap(ctx, db_models.LedgerSettings{VoteThreshold: 3, CreationPoints: 10, CheckInPoints: 5})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(3), first.VoteThreshold)

	second, created, err := repo.Bootstrap(ctx, db_models.LedgerSettings{VoteThreshold: 9, CreationPoints: 99, CheckInPoints: 99})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint64(3), second.VoteThreshold)
	assert.Equal(t, int64(10), second.CreationPoints)

	shared, err := repo.Share(ctx)
	require.NoError(t, err)
	require.NotNil(t, shared)
	assert.Equal(t, uint64(3), shared.VoteThreshold)
}

func TestTourUpdateHandlesIDZero(t *testing.T) {
	ctx := context.Background()
	repo := NewTourRepository(setupTestDB(t))

	tour := &db_models.Tour{ID: 0, OwnerID: uuid.New(), ImageRef: "Qm1", Location: "Paris", Active: true}
	require.NoError(t, repo.Create(ctx, tour))

	tour.Upvotes = 2
	tour.Active = false
	require.NoError(t, repo.Update(ctx, tour))

	stored, err := repo.FindByID(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, uint64(2), stored.Upvotes)
	assert.False(t, stored.Active)

	missing, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Update(ctx, &db_models.Tour{ID: 7})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVoteInsertRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewVoteRepository(setupTestDB(t))
	voter := uuid.New()

	require.NoError(t, repo.Insert(ctx, 0, voter))
	require.Error(t, repo.Insert(ctx, 0, voter))
	require.NoError(t, repo.Insert(ctx, 1, voter))

	exists, err := repo.Exists(ctx, 0, voter)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 2, voter)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCheckInsListInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewCheckInRepository(setupTestDB(t))

	participants := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, p := range participants {
		require.NoError(t, repo.Insert(ctx, &db_models.CheckIn{
			TourID: 4, ParticipantID: p, ImageRef: fmt.Sprintf("Qm%d", i), Location: "Paris", Status: db_models.CheckInStatusConfirmed,
		}))
	}
	err := repo.Insert(ctx, &db_models.CheckIn{TourID: 4, ParticipantID: participants[0], ImageRef: "dup", Location: "Paris", Status: db_models.CheckInStatusConfirmed})
	require.Error(t, err)

	list, err := repo.ListByTour(ctx, 4)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, p := range participants {
		assert.Equal(t, p, list[i].ParticipantID)
	}
}

func TestRewardCreditAccumulatesAndFailsClosed(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRewardRepository(db)
	account := uuid.New()

	balance, err := repo.Balance(ctx, account)
	require.NoError(t, err)
	assert.Zero(t, balance)

	next, err := repo.Credit(ctx, account, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), next)
	next, err = repo.Credit(ctx, account, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), next)

	require.NoError(t, db.Model(&db_models.RewardBalance{}).Where("account_id = ?", account).Update("points", int64(math.MaxInt64-3)).Error)
	_, err = repo.Credit(ctx, account, 4)
	require.ErrorIs(t, err, utils.ErrBalanceOverflow)

	balance, err = repo.Balance(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-3), balance)
}

func TestLockBalancesCreatesRows(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRewardRepository(db)
	a, b := uuid.New(), uuid.New()

	require.NoError(t, repo.LockBalances(ctx, b, a, b))

	var count int64
	require.NoError(t, db.Model(&db_models.RewardBalance{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestLedgerTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedgerRepository(setupTestDB(t))
	account := uuid.New()

	err := ledger.WithinTransaction(ctx, func(tx Ledger) error {
		if _, err := tx.Rewards().Credit(ctx, account, 10); err != nil {
			return err
		}
		return utils.ErrLocationMismatch
	})
	require.ErrorIs(t, err, utils.ErrLocationMismatch)

	balance, err := ledger.Rewards().Balance(ctx, account)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestNotificationsListAfter(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(setupTestDB(t))
	tourID := uint64(0)

	require.NoError(t, repo.Append(ctx, []*db_models.Notification{
		{Type: db_models.EventTourCreated, TourID: &tourID, Attributes: map[string]interface{}{"location": "Paris"}},
		{Type: db_models.EventTourUpvoted, TourID: &tourID, Attributes: map[string]interface{}{"upvotes": "1"}},
		{Type: db_models.EventTourVerified, TourID: &tourID, Attributes: map[string]interface{}{}},
	}))

	all, err := repo.ListAfter(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Paris", all[0].Attributes["location"])

	rest, err := repo.ListAfter(ctx, all[0].ID, 1)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, db_models.EventTourUpvoted, rest[0].Type)
}

func TestAccountStakeAndPassword(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(setupTestDB(t))

	account := &db_models.Account{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: db_models.RoleUser}
	require.NoError(t, repo.Insert(ctx, account))

	stake, err := repo.AddStake(ctx, account.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stake)

	require.NoError(t, repo.UpdatePasswordHash(ctx, account.ID, "y"))
	stored, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "y", stored.PasswordHash)
	assert.Equal(t, int64(3), stored.Stake)

	_, err = repo.AddStake(ctx, uuid.New(), 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
