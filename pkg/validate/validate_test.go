package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

func ptr[T any](v T) *T { return &v }

type productInput struct {
	Title     *string          `json:"title"     validate:"required,max=12"`
	Price     *decimal.Decimal `json:"price"     validate:"required,decimal=6,2"`
	Inventory *int             `json:"inventory" validate:"required,gte=0"`
	Tier      string           `json:"tier"      validate:"nullable,in=B,S,G"`
	Email     string           `json:"email"     validate:"nullable,email"`
}

func valid() productInput {
	return productInput{
		Title:     ptr("Lamp"),
		Price:     ptr(decimal.RequireFromString("19.99")),
		Inventory: ptr(0),
	}
}

func TestValidInput(t *testing.T) {
	assert.Empty(t, validate.Struct(valid()))
}

func TestRequiredMeansPresent(t *testing.T) {
	errs := validate.Struct(productInput{})

	assert.Equal(t, []string{"inventory", "price", "title"}, errs.Fields())
	assert.Equal(t, []string{"The title field is required."}, errs["title"])
}

func TestZeroPointerIsPresent(t *testing.T) {
	in := valid()
	in.Inventory = ptr(0)
	assert.False(t, validate.Struct(in).Has("inventory"))
}

func TestBlankStringIsMissing(t *testing.T) {
	in := valid()
	in.Title = ptr("   ")
	assert.True(t, validate.Struct(in).Has("title"))
}

func TestMaxLength(t *testing.T) {
	in := valid()
	in.Title = ptr("an overly long title")
	assert.Equal(t, []string{"The title must not exceed 12 characters."}, validate.Struct(in)["title"])
}

func TestDecimalShape(t *testing.T) {
	cases := map[string]string{
		"19.99":    "",
		"9999.99":  "",
		"-5":       "",
		"19.999":   "The price must not have more than 2 decimal places.",
		"12345.6":  "The price must not have more than 4 digits before the decimal point.",
		"123456.7": "The price must not have more than 6 digits in total.",
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			in := valid()
			in.Price = ptr(decimal.RequireFromString(raw))
			errs := validate.Struct(in)
			if want == "" {
				assert.False(t, errs.Has("price"), errs)
				return
			}
			assert.Equal(t, []string{want}, errs["price"])
		})
	}
}

func TestNumericBoundsOnPointers(t *testing.T) {
	in := valid()
	in.Inventory = ptr(-1)
	assert.Equal(t, []string{"The inventory must be greater than or equal to 0."}, validate.Struct(in)["inventory"])
}

func TestInRule(t *testing.T) {
	in := valid()
	in.Tier = "P"
	assert.Equal(t, []string{"The selected tier is invalid."}, validate.Struct(in)["tier"])

	in.Tier = "G"
	assert.False(t, validate.Struct(in).Has("tier"))
}

func TestNullableSkipsRules(t *testing.T) {
	in := valid()
	in.Email = ""
	assert.False(t, validate.Struct(in).Has("email"))

	in.Email = "not-an-email"
	assert.True(t, validate.Struct(in).Has("email"))
}

func TestErrorsMerge(t *testing.T) {
	errs := validate.Errors{}
	errs.Add("customer", "bad")
	errs.Merge("items.0.", validate.Errors{"quantity": {"The quantity must be at least 1."}})

	assert.Equal(t, []string{"customer", "items.0.quantity"}, errs.Fields())
	assert.Contains(t, errs.Error(), "items.0.quantity: The quantity must be at least 1.")
}
