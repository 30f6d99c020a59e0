package admin

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/resource"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

func changeLink(l serializers.Links, model string, id uint) resource.Map {
	return resource.Map{"change": l.Detail("admin."+model+".change", id)}
}

// ---- products ----

func (s *Site) productAdmin() *ModelAdmin {
	return &ModelAdmin{
		Name:          "products",
		Verbose:       "product",
		VerbosePlural: "products",
		Table:         "products",
		ListDisplay:   []string{"title", "price", "inventory_status", "collection_title"},
		Sortable: map[string]string{
			"id":               "products.id",
			"title":            "products.title",
			"price":            "products.price",
			"inventory_status": "products.inventory",
			"collection_title": "collections.title",
			"last_update":      "products.last_update",
		},
		Ordering:     []projector.SortField{{Name: "id", Desc: true}},
		PerPage:      10,
		SearchFields: []orm.SearchField{{Column: "products.title", Lookup: orm.IContains}},
		Filters: []ListFilter{
			RelatedFilter{Param: "collection__id", Label: "collection", Column: "products.collection_id", Options: collectionChoices},
			DateFilter{Param: "last_update", Label: "last update", Column: "products.last_update"},
			InventoryFilter{Column: "products.inventory", Threshold: models.LowInventory},
		},
		Actions: []Action{{
			Name:        "clear_inventory",
			Description: "Clear inventory",
			Level:       session.Success,
			Run:         s.catalog.ClearInventory,
			Message: func(n int64) string {
				return fmt.Sprintf("%d products were successfully updated.", n)
			},
		}},
		AutocompleteFields: map[string]string{"collection": "collections"},

		model: &models.Product{},
		list: list[projector.ProductRow]{
			base: projector.Products,
			columns: func(l serializers.Links, p projector.ProductRow) resource.Map {
				return resource.Map{
					"id":               p.ID,
					"title":            p.Title,
					"price":            p.Price.StringFixed(2),
					"inventory_status": p.InventoryStatus(),
					"collection_title": p.CollectionTitle,
					"links":            changeLink(l, "products", p.ID),
				}
			},
			option: func(p projector.ProductRow) Option { return Option{ID: p.ID, Text: p.Title} },
		},
		editor: form[serializers.ProductForm, projector.ProductRow]{
			load:   s.catalog.Product,
			create: s.catalog.CreateProduct,
			update: s.catalog.UpdateProduct,
			delete: s.catalog.DeleteProduct,
			object: func(_ serializers.Links, p projector.ProductRow) Object {
				return Object{ID: p.ID, Str: p.String(), Data: resource.Map{
					"title":            p.Title,
					"description":      p.Description,
					"price":            p.Price.StringFixed(2),
					"inventory":        p.Inventory,
					"last_update":      p.LastUpdate.UTC().Format(time.RFC3339),
					"collection":       p.CollectionID,
					"collection_title": p.CollectionTitle,
				}}
			},
		},
	}
}

// collectionChoices offers every collection, by title, to the product
// collection filter.
func collectionChoices(ctx context.Context, db *gorm.DB) ([]Choice, error) {
	var rows []models.Collection
	if err := db.WithContext(ctx).Order("title").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Choice, 0, len(rows))
	for _, c := range rows {
		out = append(out, Choice{Value: strconv.FormatUint(uint64(c.ID), 10), Label: c.Title})
	}
	return out, nil
}

// ---- collections ----

func (s *Site) collectionAdmin() *ModelAdmin {
	return &ModelAdmin{
		Name:          "collections",
		Verbose:       "collection",
		VerbosePlural: "collections",
		Table:         "collections",
		ListDisplay:   []string{"title", "products_count"},
		Sortable: map[string]string{
			"id":             "collections.id",
			"title":          "collections.title",
			"products_count": "products_count",
		},
		Ordering:     []projector.SortField{{Name: "id", Desc: true}},
		SearchFields: []orm.SearchField{{Column: "collections.title", Lookup: orm.IContains}},

		model: &models.Collection{},
		list: list[projector.CollectionRow]{
			base: projector.Collections,
			columns: func(l serializers.Links, c projector.CollectionRow) resource.Map {
				links := changeLink(l, "collections", c.ID)
				links["products_count"] = filteredLink(l.Named("admin.products.changelist", nil), "collection__id", c.ID)
				return resource.Map{
					"id":             c.ID,
					"title":          c.Title,
					"products_count": c.ProductsCount,
					"links":          links,
				}
			},
			option: func(c projector.CollectionRow) Option { return Option{ID: c.ID, Text: c.Title} },
		},
		editor: form[serializers.CollectionInput, projector.CollectionRow]{
			load:   s.catalog.Collection,
			create: s.catalog.CreateCollection,
			update: s.catalog.UpdateCollection,
			delete: s.catalog.DeleteCollection,
			object: func(_ serializers.Links, c projector.CollectionRow) Object {
				return Object{ID: c.ID, Str: c.String(), Data: serializers.CollectionResource{}.ToMap(c)}
			},
		},
	}
}

// ---- customers ----

func (s *Site) customerAdmin() *ModelAdmin {
	return &ModelAdmin{
		Name:          "customers",
		Verbose:       "customer",
		VerbosePlural: "customers",
		Table:         "customers",
		ListDisplay:   []string{"first_name", "last_name", "membership", "orders_count"},
		ListEditable:  []string{"membership"},
		Sortable: map[string]string{
			"id":           "customers.id",
			"first_name":   "customers.first_name",
			"last_name":    "customers.last_name",
			"membership":   "customers.membership",
			"orders_count": "orders_count",
		},
		Ordering: []projector.SortField{{Name: "first_name"}, {Name: "last_name"}},
		PerPage:  20,
		SearchFields: []orm.SearchField{
			{Column: "customers.first_name", Lookup: orm.IStartsWith},
			{Column: "customers.last_name", Lookup: orm.IStartsWith},
		},

		model: &models.Customer{},
		list: list[projector.CustomerRow]{
			base: projector.Customers,
			columns: func(l serializers.Links, c projector.CustomerRow) resource.Map {
				links := changeLink(l, "customers", c.ID)
				links["orders_count"] = filteredLink(l.Named("admin.orders.changelist", nil), "customer__id", c.ID)
				return resource.Map{
					"id":           c.ID,
					"first_name":   c.FirstName,
					"last_name":    c.LastName,
					"membership":   c.Membership,
					"orders_count": c.OrdersCount,
					"links":        links,
				}
			},
			option: func(c projector.CustomerRow) Option { return Option{ID: c.ID, Text: c.String()} },
		},
		editor: form[serializers.CustomerInput, projector.CustomerRow]{
			load:   s.customers.Customer,
			create: s.customers.Create,
			update: s.customers.Update,
			delete: s.customers.Delete,
			object: func(_ serializers.Links, c projector.CustomerRow) Object {
				return Object{ID: c.ID, Str: c.String(), Data: serializers.CustomerResource{}.ToMap(c)}
			},
		},
	}
}

// ---- orders ----

// orderRow is an order with its customer's name.
type orderRow struct {
	ID                uint
	PlacedAt          time.Time
	PaymentStatus     string
	CustomerID        uint
	CustomerFirstName string
	CustomerLastName  string
}

func orderRows(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Order{}).
		Select("orders.*, customers.first_name AS customer_first_name, customers.last_name AS customer_last_name").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id")
}

func (s *Site) orderAdmin() *ModelAdmin {
	return &ModelAdmin{
		Name:          "orders",
		Verbose:       "order",
		VerbosePlural: "orders",
		Table:         "orders",
		ListDisplay:   []string{"id", "placed_at", "customer"},
		Sortable: map[string]string{
			"id":        "orders.id",
			"placed_at": "orders.placed_at",
			"customer":  "orders.customer_id",
		},
		Ordering: []projector.SortField{{Name: "id"}},
		PerPage:  10,
		Lookups:  map[string]string{"customer__id": "orders.customer_id"},
		AutocompleteFields: map[string]string{
			"customer":      "customers",
			"items.product": "products",
		},

		model: &models.Order{},
		list: list[orderRow]{
			base: orderRows,
			columns: func(l serializers.Links, o orderRow) resource.Map {
				return resource.Map{
					"id":          o.ID,
					"placed_at":   o.PlacedAt.UTC().Format(time.RFC3339),
					"customer":    o.CustomerFirstName + " " + o.CustomerLastName,
					"customer_id": o.CustomerID,
					"links":       changeLink(l, "orders", o.ID),
				}
			},
			option: func(o orderRow) Option { return Option{ID: o.ID, Text: models.Order{ID: o.ID}.String()} },
		},
		editor: form[serializers.OrderInput, models.Order]{
			load:   s.orders.Order,
			create: s.orders.Create,
			update: s.orders.Update,
			delete: s.orders.Delete,
			object: func(_ serializers.Links, o models.Order) Object {
				return Object{ID: o.ID, Str: o.String(), Data: serializers.OrderResource{}.ToMap(o)}
			},
		},
	}
}

// ---- reviews ----

type reviewRow struct {
	ID           uint
	Name         string
	Date         time.Time
	ProductID    uint
	ProductTitle string
}

func reviewRows(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Review{}).
		Select("reviews.*, products.title AS product_title").
		Joins("LEFT JOIN products ON products.id = reviews.product_id")
}

func (s *Site) reviewAdmin() *ModelAdmin {
	return &ModelAdmin{
		Name:          "reviews",
		Verbose:       "review",
		VerbosePlural: "reviews",
		Table:         "reviews",
		ListDisplay:   []string{"name", "product", "date"},
		Sortable: map[string]string{
			"id":      "reviews.id",
			"name":    "reviews.name",
			"product": "products.title",
			"date":    "reviews.date",
		},
		Ordering:           []projector.SortField{{Name: "id", Desc: true}},
		SearchFields:       []orm.SearchField{{Column: "reviews.name", Lookup: orm.IContains}},
		AutocompleteFields: map[string]string{"product": "products"},

		model: &models.Review{},
		list: list[reviewRow]{
			base: reviewRows,
			columns: func(l serializers.Links, r reviewRow) resource.Map {
				return resource.Map{
					"id":         r.ID,
					"name":       r.Name,
					"product":    r.ProductTitle,
					"product_id": r.ProductID,
					"date":       r.Date.Format(serializers.DateLayout),
					"links":      changeLink(l, "reviews", r.ID),
				}
			},
			option: func(r reviewRow) Option { return Option{ID: r.ID, Text: r.Name} },
		},
		editor: form[serializers.ReviewInput, models.Review]{
			load:   s.reviews.Review,
			create: s.reviews.Create,
			update: s.reviews.Update,
			delete: s.reviews.Delete,
			object: func(_ serializers.Links, r models.Review) Object {
				return Object{ID: r.ID, Str: r.String(), Data: serializers.ReviewResource{}.ToMap(r)}
			},
		},
	}
}
