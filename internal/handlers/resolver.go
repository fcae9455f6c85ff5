package handlers

import (
	"context"

	"github.com/Keoroanthony/go-crm/internal/models"
	"github.com/Keoroanthony/go-crm/internal/store"
)

// HelloGreeting is the constant returned by the hello health check.
const HelloGreeting = "Hello, GraphQL!"

// OrderNotifier is told about every order placed through the API.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, customer models.Customer, order models.Order) error
}

// Resolver implements every query and mutation of the API.
type Resolver struct {
	store    *store.Store
	notifier OrderNotifier
}

// NewResolver returns a resolver backed by s. notifier may be nil.
func NewResolver(s *store.Store, notifier OrderNotifier) *Resolver {
	return &Resolver{store: s, notifier: notifier}
}

func (r *Resolver) Hello(ctx context.Context, _ struct{}) (string, error) {
	return HelloGreeting, nil
}
