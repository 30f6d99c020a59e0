package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/internal/testdb"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

func routes() *router.Router {
	r := router.New()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Get("/collections/{id}", services.RouteCollection, noop)
	r.Get("/products/{id}", services.RouteProduct, noop)
	r.Get("/admin/customers/{id}", services.RouteCustomer, noop)
	return r
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }
func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validationErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
	return verr.Errors
}

func countProducts(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.Product{}).Count(&n).Error)
	return n
}

func TestCreateProductChecksCollection(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewCatalogService(db, routes())
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, serializers.ProductForm{
		Title: str("Tea"), Price: dec("6.25"), Inventory: num(3), Collection: serializers.IDRef(42),
	})
	errs := validationErrors(t, err)
	assert.Equal(t, []string{`Invalid pk "42" - object does not exist.`}, errs["collection"])
	assert.Zero(t, countProducts(t, db), "no row written")

	_, err = svc.CreateProduct(ctx, serializers.ProductForm{
		Title: str("Tea"), Price: dec("6.25"), Inventory: num(3), Collection: &serializers.Ref{Link: "http://x/collections/42"},
	})
	errs = validationErrors(t, err)
	assert.Equal(t, []string{serializers.MsgLinkNotExists}, errs["collection"])

	col := testdb.Collection(t, db, "Grocery")
	row, err := svc.CreateProduct(ctx, serializers.ProductForm{
		Title: str("Tea"), Price: dec("6.25"), Inventory: num(3), Collection: &serializers.Ref{Link: "http://x/collections/1/"},
	})
	require.NoError(t, err)
	assert.Equal(t, col.ID, row.CollectionID)
	assert.Equal(t, "Grocery", row.CollectionTitle)
	assert.Equal(t, "0.0625", row.Tax.String())
	assert.False(t, row.LastUpdate.IsZero())
}

func TestUpdateProductRefreshesLastUpdate(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewCatalogService(db, routes())
	col := testdb.Collection(t, db, "Grocery")
	p := testdb.Product(t, db, col.ID, "Tea", "6.25", 3)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	testdb.SetLastUpdate(t, db, p.ID, old)

	stored, err := svc.ProductModel(context.Background(), p.ID)
	require.NoError(t, err)
	form := serializers.ProductFormOf(stored)
	form.Inventory = num(50)

	row, err := svc.UpdateProduct(context.Background(), p.ID, form)
	require.NoError(t, err)
	assert.Equal(t, 50, row.Inventory)
	assert.Equal(t, "Tea", row.Title)
	assert.True(t, row.LastUpdate.After(old))

	_, err = svc.UpdateProduct(context.Background(), 999, form)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteRules(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	catalog := services.NewCatalogService(db, routes())
	customers := services.NewCustomerService(db)

	col := testdb.Collection(t, db, "Grocery")
	sold := testdb.Product(t, db, col.ID, "Tea", "6.25", 3)
	reviewed := testdb.Product(t, db, col.ID, "Coffee", "12.00", 3)
	testdb.Review(t, db, reviewed.ID, "Ada")
	ada := testdb.Customer(t, db, "Ada", "Lovelace", "G")
	order := testdb.Order(t, db, ada.ID)
	testdb.OrderItem(t, db, order.ID, sold, 1)

	err := catalog.DeleteCollection(ctx, col.ID)
	assert.ErrorIs(t, err, services.ErrProtected)
	assert.EqualError(t, err, "Cannot delete collection “Grocery” because 2 related products still reference it.")

	assert.ErrorIs(t, catalog.DeleteProduct(ctx, sold.ID), services.ErrProtected)
	assert.ErrorIs(t, customers.Delete(ctx, ada.ID), services.ErrProtected)

	require.NoError(t, catalog.DeleteProduct(ctx, reviewed.ID))
	var reviews int64
	db.Model(&models.Review{}).Count(&reviews)
	assert.Zero(t, reviews, "reviews go with their product")

	orders := services.NewOrderService(db, routes())
	require.NoError(t, orders.Delete(ctx, order.ID))
	var items int64
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Zero(t, items)

	require.NoError(t, catalog.DeleteProduct(ctx, sold.ID))
	require.NoError(t, catalog.DeleteCollection(ctx, col.ID))
	assert.ErrorIs(t, catalog.DeleteCollection(ctx, col.ID), services.ErrNotFound)
}

func TestClearInventory(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewCatalogService(db, routes())
	col := testdb.Collection(t, db, "Grocery")
	a := testdb.Product(t, db, col.ID, "A", "1.00", 5)
	b := testdb.Product(t, db, col.ID, "B", "1.00", 20)
	c := testdb.Product(t, db, col.ID, "C", "1.00", 30)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	testdb.SetLastUpdate(t, db, a.ID, old)

	selected := func(db *gorm.DB) *gorm.DB { return db.Where("products.id IN ?", []uint{a.ID, b.ID}) }

	n, err := svc.ClearInventory(context.Background(), selected)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = svc.ClearInventory(context.Background(), selected)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n, "re-applying reports the same rows")

	var got []models.Product
	require.NoError(t, db.Order("id").Find(&got).Error)
	assert.Equal(t, 0, got[0].Inventory)
	assert.Equal(t, 0, got[1].Inventory)
	assert.Equal(t, 30, got[2].Inventory)
	assert.Equal(t, c.ID, got[2].ID)
	assert.True(t, got[0].LastUpdate.Equal(old), "last_update untouched")

	none := func(db *gorm.DB) *gorm.DB { return db.Where("1 = 0") }
	n, err = svc.ClearInventory(context.Background(), none)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollectionsLifecycle(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewCatalogService(db, routes())
	ctx := context.Background()

	row, err := svc.CreateCollection(ctx, serializers.CollectionInput{Title: str("Toys")})
	require.NoError(t, err)
	assert.Zero(t, row.ProductsCount)

	row, err = svc.UpdateCollection(ctx, row.ID, serializers.CollectionInput{Title: str("Games")})
	require.NoError(t, err)
	assert.Equal(t, "Games", row.Title)

	rows, err := svc.Collections(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = svc.Collection(ctx, 404)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCustomerDefaultsAndMemberships(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewCustomerService(db)
	ctx := context.Background()

	row, err := svc.Create(ctx, serializers.CustomerInput{FirstName: str("Ada"), LastName: str("Lovelace")})
	require.NoError(t, err)
	assert.Equal(t, models.MembershipBronze, row.Membership)
	other := testdb.Customer(t, db, "Alan", "Turing", "B")

	_, err = svc.UpdateMemberships(ctx, []serializers.MembershipRow{
		{ID: &row.ID, Membership: str("G")},
		{ID: func() *uint { id := uint(999); return &id }(), Membership: str("S")},
	})
	errs := validationErrors(t, err)
	assert.Contains(t, errs, "rows.1.id")
	unchanged, _ := svc.CustomerModel(ctx, row.ID)
	assert.Equal(t, models.MembershipBronze, unchanged.Membership, "all or nothing")

	n, err := svc.UpdateMemberships(ctx, []serializers.MembershipRow{
		{ID: &row.ID, Membership: str("G")},
		{ID: &other.ID, Membership: str("S")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	changed, _ := svc.CustomerModel(ctx, other.ID)
	assert.Equal(t, models.MembershipSilver, changed.Membership)
}

func rawItems(t *testing.T, items ...interface{}) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func TestOrderInlineItems(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewOrderService(db, routes())
	ctx := context.Background()

	col := testdb.Collection(t, db, "Grocery")
	tea := testdb.Product(t, db, col.ID, "Tea", "6.25", 10)
	coffee := testdb.Product(t, db, col.ID, "Coffee", "12.00", 10)
	ada := testdb.Customer(t, db, "Ada", "Lovelace", "G")

	order, err := svc.Create(ctx, serializers.OrderInput{
		Customer: serializers.IDRef(ada.ID),
		Items: rawItems(t,
			map[string]interface{}{"product": tea.ID, "quantity": 2},
			map[string]interface{}{"product": coffee.ID, "quantity": 1, "unit_price": "10.50"},
		),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "6.25", order.Items[0].UnitPrice.StringFixed(2), "defaults to product price")
	assert.Equal(t, "10.50", order.Items[1].UnitPrice.StringFixed(2))

	order, err = svc.Update(ctx, order.ID, serializers.OrderInput{
		Customer:      serializers.IDRef(ada.ID),
		PaymentStatus: str("C"),
		Items: rawItems(t,
			map[string]interface{}{"id": order.Items[0].ID, "quantity": 5},
			map[string]interface{}{"id": order.Items[1].ID, "delete": true},
			map[string]interface{}{"product": coffee.ID, "quantity": 3},
		),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentComplete, order.PaymentStatus)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 5, order.Items[0].Quantity)
	assert.Equal(t, tea.ID, order.Items[0].ProductID)
	assert.Equal(t, coffee.ID, order.Items[1].ProductID)
	assert.Equal(t, "12.00", order.Items[1].UnitPrice.StringFixed(2))
}

func TestOrderItemErrorsWriteNothing(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewOrderService(db, routes())
	ada := testdb.Customer(t, db, "Ada", "Lovelace", "G")

	_, err := svc.Create(context.Background(), serializers.OrderInput{
		Customer: serializers.IDRef(ada.ID),
		Items: rawItems(t,
			map[string]interface{}{"product": 77, "quantity": 1},
			map[string]interface{}{"quantity": 0},
			"nope",
		),
	})
	errs := validationErrors(t, err)
	assert.Equal(t, []string{`Invalid pk "77" - object does not exist.`}, errs["items.0.product"])
	assert.Contains(t, errs, "items.1.product")
	assert.Equal(t, []string{"The quantity must be at least 1."}, errs["items.1.quantity"])
	assert.Equal(t, []string{"Invalid data. Expected a dictionary."}, errs["items.2"])

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestReviewDefaultsDate(t *testing.T) {
	db := testdb.New(t)
	svc := services.NewReviewService(db, routes())
	col := testdb.Collection(t, db, "Grocery")
	tea := testdb.Product(t, db, col.ID, "Tea", "6.25", 10)

	r, err := svc.Create(context.Background(), serializers.ReviewInput{
		Name: str("Ada"), Description: str("Lovely."), Product: &serializers.Ref{Link: "/products/1"},
	})
	require.NoError(t, err)
	assert.Equal(t, tea.ID, r.ProductID)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), r.Date.Format("2006-01-02"))

	r, err = svc.Update(context.Background(), r.ID, serializers.ReviewInput{
		Name: str("Ada"), Description: str("Lovely."), Date: str("2025-12-24"), Product: serializers.IDRef(tea.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-12-24", r.Date.Format("2006-01-02"))

	require.NoError(t, svc.Delete(context.Background(), r.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), r.ID), services.ErrNotFound)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testdb.New(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()

	user, err := svc.CreateAdmin(ctx, "root", "hunter2", true)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperuser, user.Role)
	assert.NotEqual(t, "hunter2", user.Password)

	_, err = svc.CreateAdmin(ctx, "root", "again", false)
	assert.Error(t, err)

	token, expires, err := svc.Login(ctx, "root", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expires.After(time.Now()))

	_, _, err = svc.Login(ctx, "root", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "ghost", "hunter2")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
