package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Keoroanthony/go-crm/internal/models"
	"github.com/Keoroanthony/go-crm/internal/store"
)

type CustomerNode struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductNode struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type OrderNode struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
	Customer    *CustomerNode   `json:"customer"`
	Products    []ProductNode   `json:"products"`
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(id string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 0)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", id)
	}
	return uint(n), nil
}

func customerToNode(c models.Customer) CustomerNode {
	return CustomerNode{
		ID:        formatID(c.ID),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func customersToNodes(customers []models.Customer) []CustomerNode {
	nodes := make([]CustomerNode, len(customers))
	for i, c := range customers {
		nodes[i] = customerToNode(c)
	}
	return nodes
}

func productToNode(p models.Product) ProductNode {
	return ProductNode{
		ID:    formatID(p.ID),
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}

func productsToNodes(products []models.Product) []ProductNode {
	nodes := make([]ProductNode, len(products))
	for i, p := range products {
		nodes[i] = productToNode(p)
	}
	return nodes
}

func orderToNode(o models.Order) OrderNode {
	node := OrderNode{
		ID:          formatID(o.ID),
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate,
		Products:    productsToNodes(o.Products),
	}
	if o.Customer.ID != 0 {
		customer := customerToNode(o.Customer)
		node.Customer = &customer
	}
	return node
}

const (
	DefaultPageSize = 100
	MaxPageSize     = 10000

	cursorPrefix = "arrayconnection:"
	// maxCursorOffset keeps offset+1 and offset+limit from overflowing.
	maxCursorOffset = math.MaxInt32
)

var errInvalidCursor = errors.New("invalid cursor")

// ConnectionArgs are the paging and sorting arguments shared by listings.
type ConnectionArgs struct {
	First   *int   `json:"first"`
	After   string `json:"after"`
	OrderBy string `json:"orderBy"`
}

func (a ConnectionArgs) page() (store.Page, error) {
	page := store.Page{Limit: DefaultPageSize}
	if a.First != nil {
		if *a.First < 1 {
			return page, fmt.Errorf("first must be positive, got %d", *a.First)
		}
		page.Limit = min(*a.First, MaxPageSize)
	}
	if a.After != "" {
		offset, err := decodeCursor(a.After)
		if err != nil {
			return page, err
		}
		page.Offset = offset + 1
	}
	return page, nil
}

func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil || !strings.HasPrefix(string(raw), cursorPrefix) {
		return 0, errInvalidCursor
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(string(raw), cursorPrefix))
	if err != nil || offset < 0 || offset > maxCursorOffset {
		return 0, errInvalidCursor
	}
	return offset, nil
}

type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

type Connection[T any] struct {
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int64     `json:"totalCount"`
}

func newConnection[M any, N any](items []M, total int64, page store.Page, convert func(M) N) Connection[N] {
	conn := Connection[N]{
		Edges:      make([]Edge[N], len(items)),
		TotalCount: total,
	}
	for i, item := range items {
		conn.Edges[i] = Edge[N]{Cursor: encodeCursor(page.Offset + i), Node: convert(item)}
	}
	if len(conn.Edges) > 0 {
		conn.PageInfo.StartCursor = &conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = &conn.Edges[len(conn.Edges)-1].Cursor
	}
	conn.PageInfo.HasPreviousPage = page.Offset > 0
	conn.PageInfo.HasNextPage = int64(page.Offset+len(items)) < total
	return conn
}
