package serializers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

func routes() *router.Router {
	r := router.New()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Get("/collections/{id}", "collections.show", noop)
	r.Get("/products/{id}", "products.show", noop)
	return r
}

func TestRefAcceptsIDAndLink(t *testing.T) {
	rt := routes()

	var in serializers.ProductInput
	errs, err := bind.Bytes([]byte(`{"collection": 7}`), &in)
	require.NoError(t, err)
	assert.NotContains(t, errs, "collection")
	id, msg := in.Collection.Resolve(rt, "collections.show")
	assert.Equal(t, uint(7), id)
	assert.Empty(t, msg)

	in = serializers.ProductInput{}
	_, err = bind.Bytes([]byte(`{"collection": "http://shop.test/collections/3/"}`), &in)
	require.NoError(t, err)
	id, msg = in.Collection.Resolve(rt, "collections.show")
	assert.Equal(t, uint(3), id)
	assert.Empty(t, msg)

	_, msg = serializers.Ref{Link: "http://shop.test/products/3"}.Resolve(rt, "collections.show")
	assert.Equal(t, serializers.MsgNoURLMatch, msg)
	_, msg = serializers.Ref{Link: "/collections/abc"}.Resolve(rt, "collections.show")
	assert.Equal(t, serializers.MsgNoURLMatch, msg)
}

func TestRefTypeErrors(t *testing.T) {
	var in serializers.ProductInput
	errs, err := bind.Bytes([]byte(`{"title": "Tea", "price": "1.00", "inventory": 1, "collection": {"id": 1}}`), &in)
	require.NoError(t, err)
	assert.Equal(t, []string{serializers.Ref{}.InvalidMessage()}, errs["collection"])
}

func TestRefNotFoundMessage(t *testing.T) {
	assert.Equal(t, `Invalid pk "9" - object does not exist.`, serializers.Ref{ID: 9}.NotFoundMessage())
	assert.Equal(t, serializers.MsgLinkNotExists, serializers.Ref{Link: "/collections/9"}.NotFoundMessage())
}

func TestProductInputValidation(t *testing.T) {
	var in serializers.ProductInput
	errs, err := bind.Bytes([]byte(`{"title": "", "price": "12345.678", "inventory": "lots"}`), &in)
	require.NoError(t, err)

	assert.Equal(t, []string{"The title field is required."}, errs["title"])
	assert.Equal(t, []string{"The price must not have more than 6 digits in total."}, errs["price"])
	assert.Equal(t, []string{"A valid integer is required."}, errs["inventory"])
	assert.Equal(t, []string{"The collection field is required."}, errs["collection"])
}

func TestProductInputIgnoresReadOnlyFields(t *testing.T) {
	var in serializers.ProductInput
	errs, err := bind.Bytes([]byte(`{"id": 99, "tax": "1", "total_price": "2", "title": "Tea", "price": 6.25, "inventory": 3, "collection": 1}`), &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "6.25", in.Price.String())
}

func TestPartialBindKeepsStoredValues(t *testing.T) {
	stored := models.Product{Title: "Tea", Price: decimal.RequireFromString("6.25"), Inventory: 3, CollectionID: 2}
	in := serializers.ProductInputOf(stored)

	errs, err := bind.Bytes([]byte(`{"inventory": 50}`), &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "Tea", *in.Title)
	assert.Equal(t, 50, *in.Inventory)
	assert.Equal(t, uint(2), in.Collection.ID)
}

func TestProductResource(t *testing.T) {
	links := serializers.Links{Base: "http://shop.test", Routes: routes()}
	row := projector.ProductOf(models.Product{
		ID: 1, Title: "Tea", Price: decimal.RequireFromString("19.99"), Inventory: 4, CollectionID: 3,
	})

	m := serializers.ProductResource{Links: links}.ToMap(row)
	assert.Equal(t, "19.99", m["price"])
	assert.Equal(t, "0.1999", m["tax"])
	assert.Equal(t, "20.1899", m["total_price"])
	assert.Equal(t, "http://shop.test/collections/3", m["collection"])
	assert.NotContains(t, m, "description")
	assert.NotContains(t, m, "last_update")
}

func TestOrderResourceItems(t *testing.T) {
	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := serializers.OrderResource{}.ToMap(models.Order{
		ID: 5, PlacedAt: placed, PaymentStatus: "C", CustomerID: 2,
		Items: []models.OrderItem{{ID: 1, ProductID: 4, Quantity: 2, UnitPrice: decimal.RequireFromString("3")}},
	})
	assert.Equal(t, "2026-03-01T10:00:00Z", m["placed_at"])
	items, ok := m["items"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "3.00", items[0]["unit_price"])
}

func TestCustomerMembershipRule(t *testing.T) {
	var in serializers.CustomerInput
	errs, err := bind.Bytes([]byte(`{"first_name": "Ada", "last_name": "L", "membership": "X"}`), &in)
	require.NoError(t, err)
	assert.Equal(t, []string{"The selected membership is invalid."}, errs["membership"])
}
