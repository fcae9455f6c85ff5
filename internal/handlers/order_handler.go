package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Keoroanthony/go-crm/internal/models"
	"github.com/Keoroanthony/go-crm/internal/store"
)

const (
	msgOrderCreated      = "Order created successfully"
	msgCustomerNotFound  = "Customer not found"
	msgProductsRequired  = "At least one product required"
	msgInvalidProductIDs = "Invalid product ID(s)"

	notifyTimeout = 30 * time.Second
)

type OrderInput struct {
	CustomerID string     `json:"customerId"`
	ProductIDs []string   `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate"`
}

type CreateOrderArgs struct {
	Input OrderInput `json:"input"`
}

type CreateOrderPayload struct {
	Order   *OrderNode `json:"order"`
	Message string     `json:"message"`
	Success bool       `json:"success"`
}

func (r *Resolver) CreateOrder(ctx context.Context, args CreateOrderArgs) CreateOrderPayload {
	in := args.Input

	customerID, err := parseID(in.CustomerID)
	if err != nil {
		return CreateOrderPayload{Message: msgCustomerNotFound}
	}
	customer, err := r.store.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CreateOrderPayload{Message: msgCustomerNotFound}
		}
		return CreateOrderPayload{Message: "Error: " + err.Error()}
	}

	if len(in.ProductIDs) == 0 {
		return CreateOrderPayload{Message: msgProductsRequired}
	}

	productIDs := make([]uint, len(in.ProductIDs))
	for i, raw := range in.ProductIDs {
		id, err := parseID(raw)
		if err != nil {
			return CreateOrderPayload{Message: msgInvalidProductIDs}
		}
		productIDs[i] = id
	}

	products, err := r.store.FindProducts(ctx, productIDs)
	if err != nil {
		return CreateOrderPayload{Message: "Error: " + err.Error()}
	}
	if len(products) != len(productIDs) {
		return CreateOrderPayload{Message: msgInvalidProductIDs}
	}

	orderDate := time.Now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	order := models.Order{
		CustomerID:  customer.ID,
		Products:    products,
		TotalAmount: models.SumPrices(products),
		OrderDate:   orderDate,
	}
	err = r.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.CreateOrder(ctx, &order)
	})
	if err != nil {
		return CreateOrderPayload{Message: "Error: " + err.Error()}
	}
	order.Customer = *customer

	r.notifyOrderPlaced(*customer, order)

	node := orderToNode(order)
	return CreateOrderPayload{Order: &node, Message: msgOrderCreated, Success: true}
}

func (r *Resolver) notifyOrderPlaced(customer models.Customer, order models.Order) {
	if r.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := r.notifier.OrderPlaced(ctx, customer, order); err != nil {
			log.Printf("Failed to send order confirmation for order %d to %s: %v", order.ID, customer.Email, err)
		}
	}()
}
