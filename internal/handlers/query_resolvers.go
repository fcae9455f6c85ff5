package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Keoroanthony/go-crm/internal/store"
)

type CustomerQueryArgs struct {
	ConnectionArgs
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PhonePattern string     `json:"phonePattern"`
	CreatedAtGte *time.Time `json:"createdAtGte"`
	CreatedAtLte *time.Time `json:"createdAtLte"`
}

type ProductQueryArgs struct {
	ConnectionArgs
	Name     string           `json:"name"`
	PriceGte *decimal.Decimal `json:"priceGte"`
	PriceLte *decimal.Decimal `json:"priceLte"`
	StockGte *int             `json:"stockGte"`
	StockLte *int             `json:"stockLte"`
	StockLt  *int             `json:"stockLt"`
}

type OrderQueryArgs struct {
	ConnectionArgs
	TotalAmountGte *decimal.Decimal `json:"totalAmountGte"`
	TotalAmountLte *decimal.Decimal `json:"totalAmountLte"`
	OrderDateGte   *time.Time       `json:"orderDateGte"`
	OrderDateLte   *time.Time       `json:"orderDateLte"`
	CustomerID     string           `json:"customerId"`
	CustomerName   string           `json:"customerName"`
	ProductID      string           `json:"productId"`
	ProductName    string           `json:"productName"`
}

func (r *Resolver) AllCustomers(ctx context.Context, args CustomerQueryArgs) (Connection[CustomerNode], error) {
	page, err := args.page()
	if err != nil {
		return Connection[CustomerNode]{}, err
	}

	filter := store.CustomerFilter{
		Name:         args.Name,
		Email:        args.Email,
		PhonePattern: args.PhonePattern,
		CreatedAtGte: args.CreatedAtGte,
		CreatedAtLte: args.CreatedAtLte,
	}
	customers, total, err := r.store.ListCustomers(ctx, filter, args.OrderBy, page)
	if err != nil {
		return Connection[CustomerNode]{}, err
	}
	return newConnection(customers, total, page, customerToNode), nil
}

func (r *Resolver) AllProducts(ctx context.Context, args ProductQueryArgs) (Connection[ProductNode], error) {
	page, err := args.page()
	if err != nil {
		return Connection[ProductNode]{}, err
	}

	filter := store.ProductFilter{
		Name:     args.Name,
		PriceGte: args.PriceGte,
		PriceLte: args.PriceLte,
		StockGte: args.StockGte,
		StockLte: args.StockLte,
		StockLt:  args.StockLt,
	}
	products, total, err := r.store.ListProducts(ctx, filter, args.OrderBy, page)
	if err != nil {
		return Connection[ProductNode]{}, err
	}
	return newConnection(products, total, page, productToNode), nil
}

func (r *Resolver) AllOrders(ctx context.Context, args OrderQueryArgs) (Connection[OrderNode], error) {
	page, err := args.page()
	if err != nil {
		return Connection[OrderNode]{}, err
	}

	filter := store.OrderFilter{
		TotalAmountGte: args.TotalAmountGte,
		TotalAmountLte: args.TotalAmountLte,
		OrderDateGte:   args.OrderDateGte,
		OrderDateLte:   args.OrderDateLte,
		CustomerName:   args.CustomerName,
		ProductName:    args.ProductName,
	}
	if args.CustomerID != "" {
		id, err := parseID(args.CustomerID)
		if err != nil {
			return Connection[OrderNode]{}, err
		}
		filter.CustomerID = &id
	}
	if args.ProductID != "" {
		id, err := parseID(args.ProductID)
		if err != nil {
			return Connection[OrderNode]{}, err
		}
		filter.ProductID = &id
	}

	orders, total, err := r.store.ListOrders(ctx, filter, args.OrderBy, page)
	if err != nil {
		return Connection[OrderNode]{}, err
	}
	return newConnection(orders, total, page, orderToNode), nil
}
