// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"jobboard/internal/database"
	"jobboard/internal/seed"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB returns a migrated, private in-memory database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewFactory returns a deterministic seed factory with cheap password hashing.
func NewFactory(db *gorm.DB) *seed.Factory {
	preset := seed.DefaultPreset()
	preset.Seed = 42
	preset.PasswordCost = bcrypt.MinCost
	return seed.NewFactory(db, preset)
}
