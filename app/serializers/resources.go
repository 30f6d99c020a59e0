package serializers

import (
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

const DateLayout = "2006-01-02"

// ProductResource writes id, title, price, inventory, tax, total_price and
// a hyperlink to the product's collection. Decimals are strings.
type ProductResource struct {
	Links Links
}

func (r ProductResource) ToMap(p projector.ProductRow) resource.Map {
	return resource.Map{
		"id":          p.ID,
		"title":       p.Title,
		"price":       p.Price.StringFixed(2),
		"inventory":   p.Inventory,
		"tax":         p.Tax.String(),
		"total_price": p.TotalPrice.String(),
		"collection":  r.Links.Detail("collections.show", p.CollectionID),
	}
}

type CollectionResource struct{}

func (CollectionResource) ToMap(c projector.CollectionRow) resource.Map {
	return resource.Map{
		"id":             c.ID,
		"title":          c.Title,
		"products_count": c.ProductsCount,
	}
}

type ReviewResource struct{}

func (ReviewResource) ToMap(r models.Review) resource.Map {
	return resource.Map{
		"id":          r.ID,
		"name":        r.Name,
		"date":        r.Date.Format(DateLayout),
		"description": r.Description,
		"product":     r.ProductID,
	}
}

type CustomerResource struct{}

func (CustomerResource) ToMap(c projector.CustomerRow) resource.Map {
	return resource.Map{
		"id":           c.ID,
		"first_name":   c.FirstName,
		"last_name":    c.LastName,
		"email":        c.Email,
		"membership":   c.Membership,
		"orders_count": c.OrdersCount,
	}
}

// OrderResource writes the order with its items inline.
type OrderResource struct{}

func (OrderResource) ToMap(o models.Order) resource.Map {
	return resource.Map{
		"id":             o.ID,
		"placed_at":      o.PlacedAt.UTC().Format(time.RFC3339),
		"payment_status": o.PaymentStatus,
		"customer":       o.CustomerID,
		"items":          resource.Many[models.OrderItem](OrderItemResource{}, o.Items),
	}
}

type OrderItemResource struct{}

func (OrderItemResource) ToMap(it models.OrderItem) resource.Map {
	return resource.Map{
		"id":         it.ID,
		"product":    it.ProductID,
		"quantity":   it.Quantity,
		"unit_price": it.UnitPrice.StringFixed(2),
	}
}
