package test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"accountsapi/db/schema"
	"accountsapi/internal/adapter/database"
	"accountsapi/internal/adapter/database/sqlite"
)

// InitTestDB returns a pool manager over a private in-memory SQLite
// database with the usuarios table created. The manager is closed when the
// test ends.
func InitTestDB(t testing.TB) *database.Manager[*database.DB] {
	t.Helper()

	ddl, err := schema.For("sqlite")

	if err != nil {
		t.Fatalf("Failed to load schema: %v", err)
	}

	manager := database.NewManager(sqlite.NewDriver(sqlite.Config{
		Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		// A shared-cache memory database lives as long as one connection
		// stays open; a single connection also avoids table locks.
		Pool:   database.PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1},
		Schema: ddl,
	}))

	t.Cleanup(func() {
		manager.Close()
	})

	return manager
}

// CountUsers returns how many rows the usuarios table holds.
func CountUsers(t testing.TB, manager *database.Manager[*database.DB]) int {
	t.Helper()

	db, err := manager.Get(t.Context())

	if err != nil {
		t.Fatalf("Failed to get pool: %v", err)
	}

	var count int

	if err := db.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM usuarios").Scan(&count); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}

	return count
}
