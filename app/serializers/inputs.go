// Package serializers maps wire JSON to inputs for the services and
// projected rows back to wire maps.
//
// Input structs use pointer fields: a nil field was not supplied. Handlers
// pre-populate an input from the stored row before binding a PATCH body
// over it, so validation always sees the merged entity.
package serializers

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/models"
)

type CollectionInput struct {
	Title *string `json:"title" validate:"required,max=255"`
}

func CollectionInputOf(c models.Collection) CollectionInput {
	return CollectionInput{Title: &c.Title}
}

type ProductInput struct {
	Title      *string          `json:"title"      validate:"required,max=255"`
	Price      *decimal.Decimal `json:"price"      validate:"required,decimal=6,2"`
	Inventory  *int             `json:"inventory"  validate:"required,min=0"`
	Collection *Ref             `json:"collection" validate:"required"`
}

func ProductInputOf(p models.Product) ProductInput {
	price := p.Price
	inventory := p.Inventory
	return ProductInput{
		Title:      &p.Title,
		Price:      &price,
		Inventory:  &inventory,
		Collection: IDRef(p.CollectionID),
	}
}

// Form widens the API input to the full set of product fields.
func (in ProductInput) Form() ProductForm {
	return ProductForm{Title: in.Title, Price: in.Price, Inventory: in.Inventory, Collection: in.Collection}
}

// ProductForm is every writable product field; the console binds it
// directly and the API reaches it through ProductInput.Form. A nil
// Description keeps the stored one.
type ProductForm struct {
	Title       *string          `json:"title"       validate:"required,max=255"`
	Description *string          `json:"description" validate:"nullable"`
	Price       *decimal.Decimal `json:"price"       validate:"required,decimal=6,2"`
	Inventory   *int             `json:"inventory"   validate:"required,min=0"`
	Collection  *Ref             `json:"collection"  validate:"required"`
}

func ProductFormOf(p models.Product) ProductForm {
	form := ProductInputOf(p).Form()
	form.Description = &p.Description
	return form
}

type CustomerInput struct {
	FirstName  *string `json:"first_name" validate:"required,max=255"`
	LastName   *string `json:"last_name"  validate:"required,max=255"`
	Email      *string `json:"email"      validate:"nullable,email,max=255"`
	Membership *string `json:"membership" validate:"nullable,in=B,S,G"`
}

func CustomerInputOf(c models.Customer) CustomerInput {
	return CustomerInput{
		FirstName:  &c.FirstName,
		LastName:   &c.LastName,
		Email:      &c.Email,
		Membership: &c.Membership,
	}
}

type ReviewInput struct {
	Name        *string `json:"name"        validate:"required,max=255"`
	Description *string `json:"description" validate:"required"`
	Date        *string `json:"date"        validate:"nullable,date"`
	Product     *Ref    `json:"product"     validate:"required"`
}

func ReviewInputOf(r models.Review) ReviewInput {
	date := r.Date.Format(DateLayout)
	return ReviewInput{
		Name:        &r.Name,
		Description: &r.Description,
		Date:        &date,
		Product:     IDRef(r.ProductID),
	}
}

// OrderInput carries the order and its inline item rows. Items are bound
// one by one so each row reports its own field errors.
type OrderInput struct {
	Customer      *Ref              `json:"customer"       validate:"required"`
	PaymentStatus *string           `json:"payment_status" validate:"nullable,in=P,C,F"`
	Items         []json.RawMessage `json:"items"`
}

func OrderInputOf(o models.Order) OrderInput {
	status := o.PaymentStatus
	return OrderInput{Customer: IDRef(o.CustomerID), PaymentStatus: &status}
}

// OrderItemInput is one inline row. A row with an ID changes that item;
// Delete removes it.
type OrderItemInput struct {
	ID        *uint            `json:"id"`
	Product   *Ref             `json:"product"    validate:"required"`
	Quantity  *int             `json:"quantity"   validate:"required,min=1,max=32767"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"nullable,decimal=6,2"`
	Delete    bool             `json:"delete"`
}

// MembershipRow is one row of the customer list-editable payload.
type MembershipRow struct {
	ID         *uint   `json:"id"         validate:"required"`
	Membership *string `json:"membership" validate:"required,in=B,S,G"`
}

// LoginInput is the admin login body.
type LoginInput struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// Str returns *s or "" when s is nil.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
