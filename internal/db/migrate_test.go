package db_test

import (
	"context"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/pedidos/db"
	"github.com/garnizeh/pedidos/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 migration recorded, got %d", count)
	}

	for _, table := range []string{"sessions", "pending_mutations"} {
		var name string
		row := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		if err := row.Scan(&name); err != nil {
			t.Fatalf("expected %s table exists: %v", table, err)
		}
	}
}

func TestMigrate_FailedFileIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	fsys := fstest.MapFS{
		"migrations/0001_ok.sql":  {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"migrations/0002_bad.sql": {Data: []byte(`CREATE TABLE b (id INTEGER); NOT SQL;`)},
		"migrations/README":       {Data: []byte(`ignored`)},
	}
	if err := db.Migrate(ctx, d, fsys); err == nil {
		t.Fatalf("expected error from bad migration")
	}

	var versions int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&versions); err != nil {
		t.Fatalf("count: %v", err)
	}
	if versions != 1 {
		t.Fatalf("expected only the good migration recorded, got %d", versions)
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	d := openTemp(t)
	if err := db.Migrate(context.Background(), d, fstest.MapFS{}); err == nil {
		t.Fatalf("expected error when migrations dir is missing")
	}
}
