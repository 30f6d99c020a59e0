package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowInventory is the stock level below which a product counts as low.
const LowInventory = 10

// Product is a catalogue item. LastUpdate is refreshed on every save.
type Product struct {
	ID           uint            `gorm:"primaryKey"                       json:"id"`
	Title        string          `gorm:"size:255;not null;index"          json:"title"`
	Description  string          `gorm:"type:text"                        json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(6,2);not null"       json:"price"`
	Inventory    int             `gorm:"not null;default:0"               json:"inventory"`
	LastUpdate   time.Time       `gorm:"autoUpdateTime"                   json:"last_update"`
	CollectionID uint            `gorm:"not null;index"                   json:"collection_id"`
	Collection   Collection      `gorm:"constraint:OnDelete:RESTRICT"     json:"-"`
}

func (p Product) String() string { return p.Title }

// InventoryStatus is "low" below LowInventory, otherwise "ok".
func (p Product) InventoryStatus() string {
	if p.Inventory < LowInventory {
		return "low"
	}
	return "ok"
}
