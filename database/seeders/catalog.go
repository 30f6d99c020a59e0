package seeders

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

func init() {
	Register("catalog", SeedCatalog)
	Register("customers", SeedCustomers)
}

var demoCatalog = map[string][]struct {
	title, price string
	inventory    int
}{
	"Beauty": {
		{"Lip Balm", "4.50", 120},
		{"Hand Cream", "8.99", 7},
	},
	"Grocery": {
		{"Coffee Beans", "12.00", 40},
		{"Green Tea", "6.25", 3},
		{"Dark Chocolate", "2.75", 0},
	},
	"Stationary": {
		{"Notebook", "3.10", 55},
	},
}

// SeedCatalog inserts demo collections and products once; a non-empty
// collections table is left alone.
func SeedCatalog(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Collection{}).Count(&n).Error; err != nil || n > 0 {
		return err
	}

	for _, title := range []string{"Beauty", "Grocery", "Stationary", "Toys"} {
		c := models.Collection{Title: title}
		if err := db.Create(&c).Error; err != nil {
			return err
		}
		for _, p := range demoCatalog[title] {
			product := models.Product{
				Title:        p.title,
				Description:  p.title + " from the demo catalogue.",
				Price:        decimal.RequireFromString(p.price),
				Inventory:    p.inventory,
				CollectionID: c.ID,
			}
			if err := db.Create(&product).Error; err != nil {
				return err
			}
			review := models.Review{
				ProductID:   product.ID,
				Name:        "Demo Reviewer",
				Description: "Does what it says.",
				Date:        time.Now().UTC().Truncate(24 * time.Hour),
			}
			if err := db.Create(&review).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedCustomers inserts demo customers, each with one order of the first
// product, once.
func SeedCustomers(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Customer{}).Count(&n).Error; err != nil || n > 0 {
		return err
	}

	var first models.Product
	hasProduct := db.Order("id").Limit(1).Find(&first).RowsAffected > 0

	customers := []models.Customer{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Membership: models.MembershipGold},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Membership: models.MembershipSilver},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Membership: models.MembershipBronze},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			return err
		}
		if !hasProduct {
			continue
		}
		order := models.Order{
			CustomerID:    customers[i].ID,
			PaymentStatus: models.PaymentComplete,
			Items: []models.OrderItem{
				{ProductID: first.ID, Quantity: i + 1, UnitPrice: first.Price},
			},
		}
		if err := db.Create(&order).Error; err != nil {
			return err
		}
	}
	return nil
}
