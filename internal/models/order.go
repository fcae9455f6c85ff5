package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order owns its product links. TotalAmount is fixed when the order is
// created and is not recomputed if the product set changes later.
type Order struct {
	ID          uint            `gorm:"primaryKey"`
	CustomerID  uint            `gorm:"index;not null"`
	Customer    Customer        `gorm:"constraint:OnDelete:CASCADE"`
	Products    []Product       `gorm:"many2many:order_products;constraint:OnDelete:CASCADE"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OrderDate   time.Time       `gorm:"index;not null"`
}

// SumPrices returns the total of the given products' current prices.
func SumPrices(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
