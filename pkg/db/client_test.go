package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type testModel struct {
	ID   int
	Name string
}

func newTestClient(t *testing.T, dsn string) *Client {
	t.Helper()
	client, err := New(context.Background(), config.DBConfig{
		DSN:    dsn,
		Driver: "sqlite",
	}, logger.Nop())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return client
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error without DSN")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{DSN: "x", Driver: "oracle"}, nil)
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestNormalizeDriver(t *testing.T) {
	cases := map[string]string{
		"":           DriverPostgres,
		"PostgreSQL": DriverPostgres,
		"pgx":        DriverPostgres,
		"sqlite3":    DriverSQLite,
		" SQLite ":   DriverSQLite,
		"mysql":      "mysql",
	}
	for in, want := range cases {
		if got := NormalizeDriver(in); got != want {
			t.Fatalf("NormalizeDriver(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	client := newTestClient(t, "file:db_with_tx?mode=memory&cache=shared")
	db := client.DB()
	if client.Driver() != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %s", client.Driver())
	}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t, "file:db_ping?mode=memory&cache=shared")
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if _, err := client.SQL(); err != nil {
		t.Fatalf("unexpected sql handle error: %v", err)
	}
}
