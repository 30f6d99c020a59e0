// Package projector attaches the derived read-model fields to queries:
// per-collection product counts, per-customer order counts and per-product
// tax and total price. Nothing here is stored; every value is computed
// from the current rows at read time.
package projector

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

var (
	taxRate    = decimal.New(1, -2)   // 0.01
	grossRatio = decimal.New(101, -2) // 1.01
)

// Tax is price * 0.01, exact.
func Tax(price decimal.Decimal) decimal.Decimal {
	return price.Mul(taxRate)
}

// TotalPrice is price * 1.01, exact.
func TotalPrice(price decimal.Decimal) decimal.Decimal {
	return price.Mul(grossRatio)
}

const (
	productsCountExpr = "(SELECT COUNT(*) FROM products WHERE products.collection_id = collections.id)"
	ordersCountExpr   = "(SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id)"
)

type CollectionRow struct {
	models.Collection
	ProductsCount int64 `gorm:"column:products_count"`
}

type CustomerRow struct {
	models.Customer
	OrdersCount int64 `gorm:"column:orders_count"`
}

// ProductRow is a product with its collection title and derived prices.
type ProductRow struct {
	models.Product
	CollectionTitle string          `gorm:"column:collection_title"`
	Tax             decimal.Decimal `gorm:"-"`
	TotalPrice      decimal.Decimal `gorm:"-"`
}

// WithProductsCount selects collections.* plus products_count. db must be
// scoped to the collections table.
func WithProductsCount(db *gorm.DB) *gorm.DB {
	return db.Select("collections.*, " + productsCountExpr + " AS products_count")
}

// WithOrdersCount selects customers.* plus orders_count. db must be scoped
// to the customers table.
func WithOrdersCount(db *gorm.DB) *gorm.DB {
	return db.Select("customers.*, " + ordersCountExpr + " AS orders_count")
}

// WithCollectionTitle selects products.* plus the title of each product's
// collection.
func WithCollectionTitle(db *gorm.DB) *gorm.DB {
	return db.Select("products.*, collections.title AS collection_title").
		Joins("LEFT JOIN collections ON collections.id = products.collection_id")
}

func Collections(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Collection{}).Scopes(WithProductsCount)
}

func Customers(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Customer{}).Scopes(WithOrdersCount)
}

func Products(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Product{}).Scopes(WithCollectionTitle)
}

// Priced fills Tax and TotalPrice from Price.
func Priced(rows []ProductRow) []ProductRow {
	for i := range rows {
		rows[i].Tax = Tax(rows[i].Price)
		rows[i].TotalPrice = TotalPrice(rows[i].Price)
	}
	return rows
}

// ProductOf projects a bare product.
func ProductOf(p models.Product) ProductRow {
	return Priced([]ProductRow{{Product: p}})[0]
}

// SortField is one term of an ordering: a wire name and its direction.
type SortField struct {
	Name string
	Desc bool
}

// ParseSort reads a comma-separated ordering like "-products_count,title".
func ParseSort(raw string) []SortField {
	var out []SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")
		if part == "" {
			continue
		}
		out = append(out, SortField{Name: part, Desc: desc})
	}
	return out
}

// Order applies fields to db. allowed maps each sortable wire name to the
// expression it sorts by: a stored column or a projected alias such as
// products_count. Unknown names are skipped; the applied terms are
// returned.
func Order(db *gorm.DB, fields []SortField, allowed map[string]string) (*gorm.DB, []SortField) {
	var applied []SortField
	for _, f := range fields {
		expr, ok := allowed[f.Name]
		if !ok {
			continue
		}
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", expr, dir))
		applied = append(applied, f)
	}
	return db, applied
}

// FindCollection loads one projected collection. found is false when no row
// has id.
func FindCollection(db *gorm.DB, id uint) (row CollectionRow, found bool, err error) {
	res := Collections(db).Where("collections.id = ?", id).Limit(1).Find(&row)
	if res.Error != nil {
		return row, false, fmt.Errorf("projector: collection %d: %w", id, res.Error)
	}
	return row, res.RowsAffected > 0, nil
}

func FindCustomer(db *gorm.DB, id uint) (row CustomerRow, found bool, err error) {
	res := Customers(db).Where("customers.id = ?", id).Limit(1).Find(&row)
	if res.Error != nil {
		return row, false, fmt.Errorf("projector: customer %d: %w", id, res.Error)
	}
	return row, res.RowsAffected > 0, nil
}

func FindProduct(db *gorm.DB, id uint) (row ProductRow, found bool, err error) {
	res := Products(db).Where("products.id = ?", id).Limit(1).Find(&row)
	if res.Error != nil {
		return row, false, fmt.Errorf("projector: product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return row, false, nil
	}
	return Priced([]ProductRow{row})[0], true, nil
}
