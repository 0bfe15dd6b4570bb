package infra

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tourproof/internal/models/db_models"
)

func TestSqliteMigratesLedgerTables(t *testing.T) {
	db, err := InitSqlite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	require.NoError(t, AutoMigrate(db))
	for _, model := range []interface{}{
		&db_models.Account{},
		&db_models.LedgerSettings{},
		&db_models.Tour{},
		&db_models.TourVote{},
		&db_models.CheckIn{},
		&db_models.RewardBalance{},
		&db_models.Notification{},
	} {
		require.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestTourIDZeroIsStoredExplicitly(t *testing.T) {
	db, err := InitSqlite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })
	require.NoError(t, AutoMigrate(db))

	tour := db_models.Tour{ID: 0, OwnerID: uuid.New(), ImageRef: "Qm1", Location: "Paris", Active: true}
	require.NoError(t, db.Create(&tour).Error)

	var stored db_models.Tour
	require.NoError(t, db.First(&stored, "id = ?", 0).Error)
	require.Equal(t, "Paris", stored.Location)
}
