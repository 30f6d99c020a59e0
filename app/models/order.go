package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending  = "P"
	PaymentComplete = "C"
	PaymentFailed   = "F"
)

// PaymentStatusLabels maps each payment status code to its display label.
var PaymentStatusLabels = map[string]string{
	PaymentPending:  "Pending",
	PaymentComplete: "Complete",
	PaymentFailed:   "Failed",
}

type Order struct {
	ID            uint        `gorm:"primaryKey"                    json:"id"`
	PlacedAt      time.Time   `gorm:"autoCreateTime"                json:"placed_at"`
	PaymentStatus string      `gorm:"size:1;not null;default:P"     json:"payment_status"`
	CustomerID    uint        `gorm:"not null;index"                json:"customer_id"`
	Customer      Customer    `gorm:"constraint:OnDelete:RESTRICT"  json:"-"`
	Items         []OrderItem `gorm:"constraint:OnDelete:CASCADE"   json:"items,omitempty"`
}

func (o Order) String() string { return fmt.Sprintf("Order #%d", o.ID) }

// OrderItem is one product line of an order. UnitPrice is the price the
// product had when the line was added.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                   json:"id"`
	OrderID   uint            `gorm:"not null;index"               json:"order_id"`
	ProductID uint            `gorm:"not null;index"               json:"product_id"`
	Product   Product         `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Quantity  int             `gorm:"not null"                     json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(6,2);not null"   json:"unit_price"`
}
