// Package store is the persistence layer for customers, products and orders.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrUnknownSortField = errors.New("unknown sort field")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a store bound to a single database
// transaction. The transaction commits only if fn returns nil.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Savepoint marks a point inside the current transaction that RollbackTo
// can return to without aborting the whole transaction.
func (s *Store) Savepoint(name string) error {
	if err := s.db.SavePoint(name).Error; err != nil {
		return fmt.Errorf("savepoint %s: %w", name, err)
	}
	return nil
}

func (s *Store) RollbackTo(name string) error {
	if err := s.db.RollbackTo(name).Error; err != nil {
		return fmt.Errorf("rollback to %s: %w", name, err)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}
