package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/database"
)

func TestOpenSQLiteAndPing(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Ping(context.Background(), db))

	var n int
	require.NoError(t, db.Raw("SELECT 1 + 1").Scan(&n).Error)
	assert.Equal(t, 2, n)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
