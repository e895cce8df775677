package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIdempotent(t *testing.T) {
	db := testDB(t)

	// Seed creates data only when tables are empty. We don't clear the
	// database first because other test packages may be running
	// concurrently against the same database.
	admin := AdminSeed{Username: "admin", Email: "admin@folio.local", Password: "admin"}
	require.NoError(t, Seed(db, admin), "first Seed")
	require.NoError(t, Seed(db, admin), "second Seed")

	var userCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount))
	assert.GreaterOrEqual(t, userCount, 1)

	var settingsCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM portfolio_settings").Scan(&settingsCount))
	assert.Equal(t, 1, settingsCount, "settings must stay a singleton")

	var categoryCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categoryCount))
	assert.GreaterOrEqual(t, categoryCount, 1)
}
