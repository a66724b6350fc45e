package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

func init() {
	logger.Init("test")
}

func newSQLiteManager(t *testing.T) (*Manager, *Config) {
	t.Helper()
	cfg := SQLiteConfig(filepath.Join(t.TempDir(), "fintrack_test.db"))
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr, cfg
}

func countRows(t *testing.T, mgr *Manager, table string) int64 {
	t.Helper()
	var n int64
	if err := mgr.DB().Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestRunMigrationsSeedsReferenceData(t *testing.T) {
	mgr, _ := newSQLiteManager(t)

	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	if n := countRows(t, mgr, "transaction_types"); n != 2 {
		t.Errorf("expected 2 transaction types, got %d", n)
	}
	if n := countRows(t, mgr, "categories"); n == 0 {
		t.Error("expected seeded categories")
	}
	if n := countRows(t, mgr, "transactions"); n != 0 {
		t.Errorf("expected no transactions, got %d", n)
	}

	var name string
	if err := mgr.DB().Raw("SELECT name FROM transaction_types WHERE id = ?", 1).Scan(&name).Error; err != nil {
		t.Fatalf("query type: %v", err)
	}
	if name != "Доход" {
		t.Errorf("expected type 1 to be income, got %q", name)
	}

	// A second run is a no-op.
	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}
}

func TestMigratorDownAndVersion(t *testing.T) {
	_, cfg := newSQLiteManager(t)

	mig, err := NewMigrator(cfg)
	if err != nil {
		t.Fatalf("NewMigrator failed: %v", err)
	}
	defer mig.Close()

	v, dirty, err := mig.Version()
	if err != nil || v != 0 || dirty {
		t.Fatalf("expected clean version 0, got %d dirty=%t err=%v", v, dirty, err)
	}

	if err := mig.Up(); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	v, _, _ = mig.Version()
	if v != 2 {
		t.Errorf("expected version 2, got %d", v)
	}

	if err := mig.Down(1); err != nil {
		t.Fatalf("Down(1) failed: %v", err)
	}
	v, _, _ = mig.Version()
	if v != 1 {
		t.Errorf("expected version 1 after one step down, got %d", v)
	}

	if err := mig.Down(0); err != nil {
		t.Fatalf("Down(0) failed: %v", err)
	}
	v, _, _ = mig.Version()
	if v != 0 {
		t.Errorf("expected version 0 after full rollback, got %d", v)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	mgr, _ := newSQLiteManager(t)
	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	err := mgr.DB().Exec(
		"INSERT INTO transactions (user_id, category_id, type_id, amount, date) VALUES (?, ?, ?, ?, ?)",
		999, 1, 1, 10, "2024-03-15 00:00:00",
	).Error
	if err == nil {
		t.Error("expected foreign key violation for unknown user")
	}
}

func TestDuplicateEmailIsTranslated(t *testing.T) {
	mgr, _ := newSQLiteManager(t)
	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	if err := mgr.DB().Create(&models.User{Email: "dup@x.com", Password: "hash"}).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := mgr.DB().Create(&models.User{Email: "dup@x.com", Password: "hash"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestPing(t *testing.T) {
	mgr, _ := newSQLiteManager(t)
	if err := mgr.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantDSN string
		wantErr bool
	}{
		{
			name:    "sqlite",
			cfg:     config.Config{DBDriver: "sqlite", DBPath: "data.db"},
			wantDSN: "data.db?_foreign_keys=on&_busy_timeout=5000",
		},
		{
			name: "postgres",
			cfg: config.Config{
				DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "u",
				DBPassword: "p", DBName: "fin", DBSSLMode: "disable",
			},
			wantDSN: "host=db port=5432 user=u password=p dbname=fin sslmode=disable",
		},
		{
			name:    "unsupported driver",
			cfg:     config.Config{DBDriver: "mysql"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewConfig(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.DSN() != tt.wantDSN {
				t.Errorf("expected DSN %q, got %q", tt.wantDSN, got.DSN())
			}
		})
	}
}
