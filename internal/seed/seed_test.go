package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Simplici0/partquote/internal/db"
	"github.com/Simplici0/partquote/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	now := time.Date(2024, 9, 11, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database, now)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 1 {
				t.Fatalf("expected 1 insert in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM addresses WHERE id = ?`, "addr_1", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM addresses WHERE type = ? AND is_default = 1`, "shipping", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM addresses WHERE zip_code = ? AND email = ?`, []any{"94102", "john.doe@acme.com"}, 1)
}

func TestRunKeepsExistingDefault(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "seed-default.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(ctx, database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	if _, err := database.Exec(`
		INSERT INTO addresses (id, type, full_name, address, is_default, created_at, updated_at)
		VALUES ('addr_9', 'shipping', 'Jane Roe', '9 Dock St', 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')
	`); err != nil {
		t.Fatalf("insert existing default: %v", err)
	}

	if _, err := Run(ctx, database, time.Now()); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM addresses WHERE is_default = 1`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM addresses WHERE id = ? AND is_default = 1`, "addr_9", 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
