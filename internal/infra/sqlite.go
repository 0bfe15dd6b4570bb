package infra

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// InitSqlite opens a SQLite database for local runs and tests. SQLite has no
// row locks, so the pool is pinned to one connection and every transaction
// runs alone.
func InitSqlite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
