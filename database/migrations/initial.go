package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func init() {
	migration.Register("20260101000001_create_collections_table", &CreateCollectionsTable{})
	migration.Register("20260101000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000003_create_customers_table", &CreateCustomersTable{})
	migration.Register("20260101000004_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260101000005_create_order_items_table", &CreateOrderItemsTable{})
	migration.Register("20260101000006_create_reviews_table", &CreateReviewsTable{})
}

// -------- 0001: collections --------

type CreateCollectionsTable struct{}

func (m *CreateCollectionsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Collection{})
}

func (m *CreateCollectionsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("collections")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: customers --------

type CreateCustomersTable struct{}

func (m *CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (m *CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("customers")
}

// -------- 0004: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0005: order items --------

type CreateOrderItemsTable struct{}

func (m *CreateOrderItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.OrderItem{})
}

func (m *CreateOrderItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items")
}

// -------- 0006: reviews --------

type CreateReviewsTable struct{}

func (m *CreateReviewsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Review{})
}

func (m *CreateReviewsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("reviews")
}
