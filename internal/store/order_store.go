package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Keoroanthony/go-crm/internal/models"
)

const orderTable = "orders"

var orderSortColumns = sortColumns{
	"id":           "id",
	"order_date":   "order_date",
	"orderDate":    "order_date",
	"total_amount": "total_amount",
	"totalAmount":  "total_amount",
	"customer_id":  "customer_id",
	"customerId":   "customer_id",
}

type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerID     *uint
	CustomerName   string
	ProductID      *uint
	ProductName    string
}

func (f OrderFilter) scope(db *gorm.DB) *gorm.DB {
	if f.TotalAmountGte != nil {
		db = db.Where("orders.total_amount >= ?", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		db = db.Where("orders.total_amount <= ?", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		db = db.Where("orders.order_date >= ?", f.OrderDateGte.UTC())
	}
	if f.OrderDateLte != nil {
		db = db.Where("orders.order_date <= ?", f.OrderDateLte.UTC())
	}
	if f.CustomerID != nil {
		db = db.Where("orders.customer_id = ?", *f.CustomerID)
	}
	if f.CustomerName != "" {
		db = db.Where("orders.customer_id IN (SELECT id FROM customers WHERE LOWER(name) LIKE ?)", contains(f.CustomerName))
	}
	if f.ProductID != nil {
		db = db.Where("orders.id IN (SELECT order_id FROM order_products WHERE product_id = ?)", *f.ProductID)
	}
	if f.ProductName != "" {
		db = db.Where(
			"orders.id IN (SELECT op.order_id FROM order_products op JOIN products p ON p.id = op.product_id WHERE LOWER(p.name) LIKE ?)",
			contains(f.ProductName),
		)
	}
	return db
}

func preloadProducts(db *gorm.DB) *gorm.DB {
	return db.Order("products.id")
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer").Preload("Products", preloadProducts)
}

// CreateOrder inserts the order and its product links. Referenced products
// must already exist; they are linked, not written.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	order.OrderDate = order.OrderDate.UTC()
	if err := s.db.WithContext(ctx).Omit("Products.*").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Scopes(withAssociations).First(&order, id).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("order %d", id))
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, filter OrderFilter, orderBy string, page Page) ([]models.Order, int64, error) {
	var orders []models.Order
	total, err := list(s.db.WithContext(ctx), orderTable, orderSortColumns, filter.scope, orderBy, page, &orders, withAssociations)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
