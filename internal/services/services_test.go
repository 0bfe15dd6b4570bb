package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tourproof/internal/infra"
	"tourproof/internal/models/db_models"
	"tourproof/internal/repositories"
	mem "tourproof/pkg/memcache"
)

const (
	testCreationPoints int64 = 10
	testCheckInPoints  int64 = 5
)

type recordingSubscriber struct {
	mu     sync.Mutex
	events []db_models.Notification
}

func (r *recordingSubscriber) Name() string { return "recorder" }

func (r *recordingSubscriber) Handle(_ context.Context, n *db_models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *n)
	return nil
}

func (r *recordingSubscriber) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recordingSubscriber) count(eventType string) int {
	n := 0
	for _, t := range r.types() {
		if t == eventType {
			n++
		}
	}
	return n
}

func (r *recordingSubscriber) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type testEnv struct {
	db       *gorm.DB
	ledger   repositories.LedgerRepository
	accounts repositories.AccountRepository
	recorder *recordingSubscriber

	tours    TourServiceInterface
	votes    VoteServiceInterface
	checkIns CheckInServiceInterface
	rewards  RewardServiceInterface
	admin    AdminServiceInterface
	notifier NotificationServiceInterface
}

func setupTestEnv(t *testing.T, threshold uint64) *testEnv {
	t.Helper()
	db, err := infra.InitSqlite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	t.Cleanup(func() { _ = infra.CloseDatabase(db) })

	logger := zap.NewNop()
	ledger := repositories.NewLedgerRepository(db)
	accounts := repositories.NewAccountRepository(db)
	policy := NewSettingsPolicy(repositories.NewSettingsRepository(db), accounts)
	locks := mem.NewKeyLocks()
	recorder := &recordingSubscriber{}
	notifier := NewNotificationService(repositories.NewNotificationRepository(db), logger, []Subscriber{recorder})

	env := &testEnv{
		db:       db,
		ledger:   ledger,
		accounts: accounts,
		recorder: recorder,
		tours:    NewTourService(ledger, policy, locks, notifier, logger),
		votes:    NewVoteService(ledger, policy, locks, notifier, logger),
		checkIns: NewCheckInService(ledger, policy, locks, notifier, logger),
		rewards:  NewRewardService(repositories.NewRewardRepository(db), logger),
		admin:    NewAdminService(ledger, policy, locks, notifier, logger),
		notifier: notifier,
	}

	_, err = env.admin.Bootstrap(context.Background(), LedgerDefaults{
		VoteThreshold:  threshold,
		CreationPoints: testCreationPoints,
		CheckInPoints:  testCheckInPoints,
	})
	require.NoError(t, err)
	return env
}

func (e *testEnv) newAccount(t *testing.T, role string) uuid.UUID {
	t.Helper()
	account := &db_models.Account{
		Name:         "user-" + uuid.NewString()[:8],
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, e.accounts.Insert(context.Background(), account))
	return account.ID
}

// verifiedTour creates a tour at "Paris" and votes it past the threshold.
func (e *testEnv) verifiedTour(t *testing.T, owner uuid.UUID) uint64 {
	t.Helper()
	ctx := context.Background()
	tourID, err := e.tours.CreateTour(ctx, owner, "Qm1", "Paris")
	require.NoError(t, err)

	settings, err := e.admin.GetSettings(ctx)
	require.NoError(t, err)
	for i := uint64(0); i < settings.VoteThreshold; i++ {
		_, err := e.votes.Upvote(ctx, tourID, uuid.New(), 1)
		require.NoError(t, err)
	}
	tour, err := e.tours.GetTour(ctx, tourID)
	require.NoError(t, err)
	require.True(t, tour.Verified)
	return tourID
}
