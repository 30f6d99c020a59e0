package seeders_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/internal/testdb"
)

func TestRunAllSeedsOnce(t *testing.T) {
	db := testdb.New(t)
	var out bytes.Buffer

	require.NoError(t, seeders.RunAll(db, &out))
	assert.Contains(t, out.String(), "Running seeder: catalog")

	var collections, products, customers, items int64
	db.Model(&models.Collection{}).Count(&collections)
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.Customer{}).Count(&customers)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.EqualValues(t, 4, collections)
	assert.EqualValues(t, 6, products)
	assert.EqualValues(t, 3, customers)
	assert.EqualValues(t, 3, items)

	require.NoError(t, seeders.RunAll(db, nil))
	db.Model(&models.Collection{}).Count(&collections)
	assert.EqualValues(t, 4, collections, "second run is a no-op")
}
