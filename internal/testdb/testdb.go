// Package testdb hands tests a migrated in-memory sqlite database and a
// few row builders.
package testdb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	_ "github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

// New opens a private in-memory database with every migration applied.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err)
	return db
}

func Collection(t testing.TB, db *gorm.DB, title string) models.Collection {
	t.Helper()
	c := models.Collection{Title: title}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// Product creates a product in collectionID. price is parsed as a decimal.
func Product(t testing.TB, db *gorm.DB, collectionID uint, title, price string, inventory int) models.Product {
	t.Helper()
	p := models.Product{
		Title:        title,
		Price:        decimal.RequireFromString(price),
		Inventory:    inventory,
		CollectionID: collectionID,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func Customer(t testing.TB, db *gorm.DB, first, last, membership string) models.Customer {
	t.Helper()
	c := models.Customer{FirstName: first, LastName: last, Email: first + "@example.com", Membership: membership}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func Order(t testing.TB, db *gorm.DB, customerID uint) models.Order {
	t.Helper()
	o := models.Order{CustomerID: customerID, PaymentStatus: models.PaymentPending}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func OrderItem(t testing.TB, db *gorm.DB, orderID uint, p models.Product, quantity int) models.OrderItem {
	t.Helper()
	it := models.OrderItem{OrderID: orderID, ProductID: p.ID, Quantity: quantity, UnitPrice: p.Price}
	require.NoError(t, db.Create(&it).Error)
	return it
}

func Review(t testing.TB, db *gorm.DB, productID uint, name string) models.Review {
	t.Helper()
	r := models.Review{ProductID: productID, Name: name, Description: "Good.", Date: time.Now().UTC().Truncate(24 * time.Hour)}
	require.NoError(t, db.Create(&r).Error)
	return r
}

// SetLastUpdate rewrites last_update without the autoUpdateTime hook.
func SetLastUpdate(t testing.TB, db *gorm.DB, productID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", productID).UpdateColumn("last_update", at).Error)
}
