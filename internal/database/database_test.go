package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gofinances/internal/database"
)

func TestRebind(t *testing.T) {
	query := "INSERT INTO kv_store (storage_key, payload) VALUES (?, ?)"

	assert.Equal(t, query, database.Rebind(database.DriverSQLite, query))
	assert.Equal(t,
		"INSERT INTO kv_store (storage_key, payload) VALUES ($1, $2)",
		database.Rebind(database.DriverPostgres, query),
	)
}

func TestNew_SQLiteMemory(t *testing.T) {
	db, err := database.New(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM kv_store").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Applying migrations twice is a no-op.
	require.NoError(t, database.Migrate(db, database.DriverSQLite))
}
