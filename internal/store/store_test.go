package store

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/BaGreal2/kino-server/internal/db"
)

// newTestDB opens a fresh in-memory database. MaxOpenConns is pinned to 1 so
// the pool never hands out a second connection with its own empty :memory: DB.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		conn.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}
