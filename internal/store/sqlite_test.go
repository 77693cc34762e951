package store

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

var sqliteDBCounter atomic.Uint64

// initSQLiteTestDB opens a fresh in-memory database for each test
func initSQLiteTestDB(t *testing.T) Store {
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", sqliteDBCounter.Add(1))
	db, err := Open(Config{Driver: DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	s := NewStore(db)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// TestSQLiteStore runs all store tests against SQLite
func TestSQLiteStore(t *testing.T) {
	RunStoreTests(t, initSQLiteTestDB)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mysql", DSN: "ignored"})
	require.Error(t, err)
}
