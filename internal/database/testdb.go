package database

import (
	migration "Lost-Found-Registry/cmd/database/migrate"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated SQLite database in the test's temp dir.
// A single connection serialises writers the way one postgres row lock would.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migration.Migrate(db); err != nil {
		sqlDB.Close()
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}
