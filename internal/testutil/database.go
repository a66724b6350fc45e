// Package testutil provides test helpers for setting up migrated databases,
// creating fixtures, and making assertions.
package testutil

import (
	"path/filepath"
	"testing"

	"fintrack/internal/database"
	"fintrack/internal/logger"

	"gorm.io/gorm"
)

// Seeded reference rows used by tests.
const (
	IncomeTypeID  uint = 1
	ExpenseTypeID uint = 2

	SalaryCategoryID    uint = 1
	SideJobCategoryID   uint = 2
	GroceriesCategoryID uint = 3
	TransportCategoryID uint = 4
	OtherCategoryID     uint = 11
)

// SetupTestDB creates a sqlite database file in a temporary directory and
// applies the embedded migrations, reference data included. The database is
// closed when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init("test")

	mgr, err := database.NewManager(database.SQLiteConfig(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })

	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return mgr.DB()
}
