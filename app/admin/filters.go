package admin

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Choice is one selectable value of a list filter.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListFilter narrows a changelist by one query parameter.
type ListFilter interface {
	Parameter() string
	Title() string
	// Choices lists the values the operator can pick, without the "All"
	// entry.
	Choices(ctx context.Context, db *gorm.DB) ([]Choice, error)
	// Scope returns the restriction for value, or nil when value selects
	// nothing known and every row should show.
	Scope(value string) func(*gorm.DB) *gorm.DB
}

// RelatedFilter filters by a foreign key, offering every referenced row.
type RelatedFilter struct {
	Param   string
	Label   string
	Column  string // qualified foreign key column, e.g. products.collection_id
	Options func(ctx context.Context, db *gorm.DB) ([]Choice, error)
}

func (f RelatedFilter) Parameter() string { return f.Param }
func (f RelatedFilter) Title() string     { return f.Label }

func (f RelatedFilter) Choices(ctx context.Context, db *gorm.DB) ([]Choice, error) {
	if f.Options == nil {
		return nil, nil
	}
	return f.Options(ctx, db)
}

func (f RelatedFilter) Scope(value string) func(*gorm.DB) *gorm.DB {
	return exact(f.Column, value)
}

// exact matches column against a positive integer value; anything else
// filters nothing.
func exact(column, value string) func(*gorm.DB) *gorm.DB {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", id)
	}
}

// Date filter values.
const (
	Today     = "today"
	Past7Days = "past_7_days"
	ThisMonth = "this_month"
	ThisYear  = "this_year"
)

// DateFilter buckets a timestamp column by calendar ranges in UTC.
type DateFilter struct {
	Param  string
	Label  string
	Column string
	Now    func() time.Time // defaults to time.Now
}

func (f DateFilter) Parameter() string { return f.Param }
func (f DateFilter) Title() string     { return f.Label }

func (f DateFilter) Choices(context.Context, *gorm.DB) ([]Choice, error) {
	return []Choice{
		{Value: Today, Label: "Today"},
		{Value: Past7Days, Label: "Past 7 days"},
		{Value: ThisMonth, Label: "This month"},
		{Value: ThisYear, Label: "This year"},
	}, nil
}

// Range returns the half-open [from, to) window of value.
func (f DateFilter) Range(value string) (from, to time.Time, ok bool) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	t := now().UTC()
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	switch value {
	case Today:
		return today, tomorrow, true
	case Past7Days:
		return today.AddDate(0, 0, -7), tomorrow, true
	case ThisMonth:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, 0), true
	case ThisYear:
		first := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

func (f DateFilter) Scope(value string) func(*gorm.DB) *gorm.DB {
	from, to, ok := f.Range(value)
	if !ok {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(f.Column+" >= ? AND "+f.Column+" < ?", from, to)
	}
}

// LowInventory is the value of the inventory filter's only bucket.
const LowInventory = "<10"

// InventoryFilter offers a single "Low" bucket: inventory below
// models.LowInventory.
type InventoryFilter struct {
	Column    string
	Threshold int
}

func (InventoryFilter) Parameter() string { return "inventory" }
func (InventoryFilter) Title() string     { return "inventory" }

func (InventoryFilter) Choices(context.Context, *gorm.DB) ([]Choice, error) {
	return []Choice{{Value: LowInventory, Label: "Low"}}, nil
}

func (f InventoryFilter) Scope(value string) func(*gorm.DB) *gorm.DB {
	if value != LowInventory {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(f.Column+" < ?", f.Threshold)
	}
}
