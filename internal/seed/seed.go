// Package seed loads a few demo rows into an empty database.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Keoroanthony/go-crm/internal/models"
	"github.com/Keoroanthony/go-crm/internal/store"
)

type Result struct {
	Customers int
	Products  int
}

var (
	customers = []models.Customer{
		{Name: "Seed Customer 1", Email: "seed1@example.com", Phone: "+1234567890"},
		{Name: "Seed Customer 2", Email: "seed2@example.com"},
	}
	products = []models.Product{
		{Name: "Seed Laptop", Price: decimal.RequireFromString("999.99"), Stock: 5},
		{Name: "Seed Mouse", Price: decimal.RequireFromString("29.99"), Stock: 20},
	}
)

// Run creates the demo customers and products that are not there yet.
func Run(ctx context.Context, conn *gorm.DB) (Result, error) {
	var res Result
	err := store.New(conn).Transaction(ctx, func(tx *store.Store) error {
		for _, c := range customers {
			c := c
			exists, err := tx.EmailExists(ctx, c.Email)
			if err != nil {
				return err
			}
			if exists {
				log.Printf("seed: customer %s already exists", c.Email)
				continue
			}
			if err := tx.CreateCustomer(ctx, &c); err != nil {
				return fmt.Errorf("seed customer %s: %w", c.Email, err)
			}
			res.Customers++
		}

		for _, p := range products {
			p := p
			exists, err := tx.ProductNameExists(ctx, p.Name)
			if err != nil {
				return err
			}
			if exists {
				log.Printf("seed: product %s already exists", p.Name)
				continue
			}
			if err := tx.CreateProduct(ctx, &p); err != nil {
				return fmt.Errorf("seed product %s: %w", p.Name, err)
			}
			res.Products++
		}
		return nil
	})
	return res, err
}
