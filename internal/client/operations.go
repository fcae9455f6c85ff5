package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Products, customers and orders are decoded loosely: amounts stay raw and
// dates stay strings so callers can skip values they cannot parse.

type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID          string          `json:"id"`
	TotalAmount json.RawMessage `json:"totalAmount"`
	OrderDate   string          `json:"orderDate"`
	Customer    *Customer       `json:"customer"`
}

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
	PageInfo   PageInfo `json:"pageInfo"`
	TotalCount int64    `json:"totalCount"`
}

func (c connection[T]) nodes() []T {
	nodes := make([]T, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

type RestockResult struct {
	UpdatedProducts []Product `json:"updatedProducts"`
	Message         string    `json:"message"`
	Success         bool      `json:"success"`
}

func (c *Client) Hello(ctx context.Context) (string, error) {
	var greeting string
	err := c.Do(ctx, "hello", nil, &greeting)
	return greeting, err
}

func (c *Client) UpdateLowStockProducts(ctx context.Context) (RestockResult, error) {
	var result RestockResult
	if err := c.Do(ctx, "updateLowStockProducts", nil, &result); err != nil {
		return RestockResult{}, err
	}
	if !result.Success {
		return result, fmt.Errorf("%w: %s", ErrResponse, result.Message)
	}
	return result, nil
}

// AllCustomers returns up to first customers.
func (c *Client) AllCustomers(ctx context.Context, first int) ([]Customer, error) {
	var conn connection[Customer]
	if err := c.Do(ctx, "allCustomers", map[string]any{"first": first}, &conn); err != nil {
		return nil, err
	}
	return conn.nodes(), nil
}

// AllOrders returns orders dated at or after since, following cursors until
// limit orders are read or the listing ends. A zero since lists everything.
func (c *Client) AllOrders(ctx context.Context, since time.Time, pageSize, limit int) ([]Order, error) {
	var orders []Order
	var after string
	for len(orders) < limit {
		vars := map[string]any{"first": min(pageSize, limit-len(orders))}
		if !since.IsZero() {
			vars["orderDateGte"] = since.UTC().Format(time.RFC3339)
		}
		if after != "" {
			vars["after"] = after
		}

		var conn connection[Order]
		if err := c.Do(ctx, "allOrders", vars, &conn); err != nil {
			return nil, err
		}
		orders = append(orders, conn.nodes()...)

		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == nil || len(conn.Edges) == 0 {
			break
		}
		after = *conn.PageInfo.EndCursor
	}
	return orders, nil
}
