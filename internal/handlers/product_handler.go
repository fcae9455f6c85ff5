package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Keoroanthony/go-crm/internal/models"
)

const (
	msgProductCreated   = "Product created successfully"
	msgPriceNotPositive = "Price must be positive"
	msgNegativeStock    = "Stock cannot be negative"
	msgNameRequired     = "Name is required"
)

type CreateProductArgs struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock"`
}

type CreateProductPayload struct {
	Product *ProductNode `json:"product"`
	Message string       `json:"message"`
	Success bool         `json:"success"`
}

type UpdateLowStockProductsPayload struct {
	UpdatedProducts []ProductNode `json:"updatedProducts"`
	Message         string        `json:"message"`
	Success         bool          `json:"success"`
}

func (r *Resolver) CreateProduct(ctx context.Context, args CreateProductArgs) CreateProductPayload {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return CreateProductPayload{Message: msgNameRequired}
	}

	stock := 0
	if args.Stock != nil {
		stock = *args.Stock
	}

	product := models.Product{Name: name, Price: args.Price, Stock: stock}
	if err := models.ValidatePrice(product.Price); err != nil {
		return CreateProductPayload{Message: msgPriceNotPositive}
	}
	if err := models.ValidateStock(product.Stock); err != nil {
		return CreateProductPayload{Message: msgNegativeStock}
	}

	if err := r.store.CreateProduct(ctx, &product); err != nil {
		return CreateProductPayload{Message: productErrorMessage(err)}
	}

	node := productToNode(product)
	return CreateProductPayload{Product: &node, Message: msgProductCreated, Success: true}
}

// UpdateLowStockProducts restocks every product below the low-stock
// threshold as read at the time of the call.
func (r *Resolver) UpdateLowStockProducts(ctx context.Context, _ struct{}) UpdateLowStockProductsPayload {
	updated, err := r.store.Restock(ctx, models.LowStockThreshold, models.RestockIncrement)
	if err != nil {
		log.Printf("API: restock failed: %v", err)
		return UpdateLowStockProductsPayload{UpdatedProducts: []ProductNode{}, Message: "Error: " + err.Error()}
	}

	return UpdateLowStockProductsPayload{
		UpdatedProducts: productsToNodes(updated),
		Message:         fmt.Sprintf("Updated %d products", len(updated)),
		Success:         true,
	}
}

func productErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrPriceNotPositive):
		return msgPriceNotPositive
	case errors.Is(err, models.ErrNegativeStock):
		return msgNegativeStock
	default:
		return "Error: " + err.Error()
	}
}
