package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Keoroanthony/go-crm/internal/models"
)

const productTable = "products"

var productSortColumns = sortColumns{
	"id":    "id",
	"name":  "name",
	"price": "price",
	"stock": "stock",
}

type ProductFilter struct {
	Name     string
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	StockGte *int
	StockLte *int
	StockLt  *int
}

func (f ProductFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("LOWER(products.name) LIKE ?", contains(f.Name))
	}
	if f.PriceGte != nil {
		db = db.Where("products.price >= ?", *f.PriceGte)
	}
	if f.PriceLte != nil {
		db = db.Where("products.price <= ?", *f.PriceLte)
	}
	if f.StockGte != nil {
		db = db.Where("products.stock >= ?", *f.StockGte)
	}
	if f.StockLte != nil {
		db = db.Where("products.stock <= ?", *f.StockLte)
	}
	if f.StockLt != nil {
		db = db.Where("products.stock < ?", *f.StockLt)
	}
	return db
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *Store) ProductNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}
	return count > 0, nil
}

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("product %d", id))
	}
	return &product, nil
}

// FindProducts loads the products with the given ids. Unknown ids are
// simply absent from the result.
func (s *Store) FindProducts(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter, orderBy string, page Page) ([]models.Product, int64, error) {
	var products []models.Product
	total, err := list(s.db.WithContext(ctx), productTable, productSortColumns, filter.scope, orderBy, page, &products)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Restock adds amount to the stock of every product whose stock is below
// threshold at the time of the call, and returns those products with their
// new stock.
func (s *Store) Restock(ctx context.Context, threshold, amount int) ([]models.Product, error) {
	var products []models.Product
	db := s.db.WithContext(ctx)
	if err := db.Where("stock < ?", threshold).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find low stock products: %w", err)
	}

	for i := range products {
		err := db.Model(&models.Product{}).
			Where("id = ?", products[i].ID).
			UpdateColumn("stock", gorm.Expr("stock + ?", amount)).Error
		if err != nil {
			return nil, fmt.Errorf("failed to restock product %d: %w", products[i].ID, err)
		}
		products[i].Stock += amount
	}
	return products, nil
}
