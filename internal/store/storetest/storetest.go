// Package storetest provides throwaway SQLite backed stores for tests.
package storetest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/kuronje-indexer/internal/store"
)

var counter atomic.Uint64

// NewSQLiteDB opens a migrated in-memory SQLite database that lives until the test ends
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:kuronje_test_%d?mode=memory&cache=shared", counter.Add(1))
	db, err := store.Open(store.Config{Driver: store.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// NewSQLiteStore returns a Store on top of NewSQLiteDB
func NewSQLiteStore(t testing.TB) store.Store {
	t.Helper()
	return store.NewStore(NewSQLiteDB(t))
}
