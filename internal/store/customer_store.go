package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Keoroanthony/go-crm/internal/models"
)

const customerTable = "customers"

var customerSortColumns = sortColumns{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"phone":      "phone",
	"created_at": "created_at",
	"createdAt":  "created_at",
}

type CustomerFilter struct {
	Name         string
	Email        string
	PhonePattern string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
}

func (f CustomerFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("LOWER(customers.name) LIKE ?", contains(f.Name))
	}
	if f.Email != "" {
		db = db.Where("LOWER(customers.email) LIKE ?", contains(f.Email))
	}
	if f.PhonePattern != "" {
		db = db.Where("customers.phone LIKE ?", f.PhonePattern+"%")
	}
	if f.CreatedAtGte != nil {
		db = db.Where("customers.created_at >= ?", f.CreatedAtGte.UTC())
	}
	if f.CreatedAtLte != nil {
		db = db.Where("customers.created_at <= ?", f.CreatedAtLte.UTC())
	}
	return db
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (s *Store) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("customer %d", id))
	}
	return &customer, nil
}

// ListCustomers returns one page of matching customers and the total match count.
func (s *Store) ListCustomers(ctx context.Context, filter CustomerFilter, orderBy string, page Page) ([]models.Customer, int64, error) {
	var customers []models.Customer
	total, err := list(s.db.WithContext(ctx), customerTable, customerSortColumns, filter.scope, orderBy, page, &customers)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
