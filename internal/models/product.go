package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// LowStockThreshold is the stock level below which a product is restocked.
	LowStockThreshold = 10
	// RestockIncrement is added to every low-stock product on restock.
	RestockIncrement = 10
)

type Product struct {
	ID    uint            `gorm:"primaryKey"`
	Name  string          `gorm:"size:100;not null"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock int             `gorm:"not null;default:0;index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	p.Price = p.Price.Round(2)
	if err := ValidatePrice(p.Price); err != nil {
		return err
	}
	return ValidateStock(p.Stock)
}
