// Package testhelpers builds throwaway SQLite stores for tests.
package testhelpers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-extras/go-kit/must"

	"github.com/maxlayn1/DevOps-App-Database/internal/database"
)

// Provider is the cgo-free SQLite driver, so tests run without a C toolchain.
const Provider = "sqlite"

// NewStore opens a fresh file-backed SQLite store in a temp dir and closes it
// when the test ends. The schema is not applied.
func NewStore(t testing.TB, opts ...database.Option) *database.Store {
	t.Helper()
	return NewProviderStore(t, Provider, opts...)
}

// NewProviderStore is NewStore for a specific SQLite provider, "sqlite" or
// "sqlite3".
func NewProviderStore(t testing.TB, provider string, opts ...database.Option) *database.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "devops_management.db")
	store := must.Must(database.Open(context.Background(), provider, path, opts...))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// NewSchemaStore is NewStore with the DevOps tables created.
func NewSchemaStore(t testing.TB, opts ...database.Option) *database.Store {
	t.Helper()

	store := NewStore(t, opts...)
	if err := store.ApplySchema(context.Background()); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return store
}
