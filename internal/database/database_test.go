package database

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JimJafar/pension-tracker/internal/models"
)

func TestConfig_DSN(t *testing.T) {
	pg := &Config{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p@ss", DBName: "pt", SSLMode: "disable"}
	if got := pg.DSN(); got != "host=db port=5432 user=u password=p@ss dbname=pt sslmode=disable" {
		t.Errorf("unexpected postgres DSN: %s", got)
	}
	if got := pg.MigrateURL(); got != "postgres://u:p%40ss@db:5432/pt?sslmode=disable" {
		t.Errorf("unexpected migrate URL: %s", got)
	}

	lite := &Config{Driver: DriverSQLite, Path: "/tmp/pt.db"}
	if !strings.HasPrefix(lite.DSN(), "/tmp/pt.db?") {
		t.Errorf("unexpected sqlite DSN: %s", lite.DSN())
	}
}

func TestManager_SQLite(t *testing.T) {
	cfg := &Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	for _, model := range models.All() {
		if !m.DB().Migrator().HasTable(model) {
			t.Errorf("expected table for %T", model)
		}
	}

	if err := m.RollbackMigrations(1); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if _, _, err := m.MigrationVersion(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestNewManager_UnknownDriver(t *testing.T) {
	if _, err := NewManager(&Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
