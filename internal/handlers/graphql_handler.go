package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type GraphQLRequest struct {
	Operation string          `json:"operation" binding:"required"`
	Variables json.RawMessage `json:"variables"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type GraphQLResponse struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type operation func(ctx context.Context, variables json.RawMessage) (any, error)

// API serves every query and mutation through a single endpoint.
type API struct {
	operations map[string]operation
}

func NewAPI(r *Resolver) *API {
	return &API{operations: map[string]operation{
		"hello":        query(r.Hello),
		"allCustomers": query(r.AllCustomers),
		"allProducts":  query(r.AllProducts),
		"allOrders":    query(r.AllOrders),

		"createCustomer":         mutation(r.CreateCustomer),
		"bulkCreateCustomers":    mutation(r.BulkCreateCustomers),
		"createProduct":          mutation(r.CreateProduct),
		"createOrder":            mutation(r.CreateOrder),
		"updateLowStockProducts": mutation(r.UpdateLowStockProducts),
	}}
}

// Operations lists the names the endpoint accepts.
func (a *API) Operations() []string {
	names := make([]string, 0, len(a.operations))
	for name := range a.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// POST /graphql
func (a *API) Handle(c *gin.Context) {
	var req GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	op, ok := a.operations[req.Operation]
	if !ok {
		c.JSON(http.StatusOK, errorResponse(fmt.Errorf("unknown operation %q", req.Operation)))
		return
	}

	result, err := op(c.Request.Context(), req.Variables)
	if err != nil {
		log.Printf("API: %s failed (request %s): %v", req.Operation, c.GetString(requestIDKey), err)
		c.JSON(http.StatusOK, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, GraphQLResponse{Data: map[string]any{req.Operation: result}})
}

func errorResponse(err error) GraphQLResponse {
	return GraphQLResponse{Errors: []GraphQLError{{Message: err.Error()}}}
}

// query adapts a resolver whose failures are reported in the errors list.
func query[A any, R any](fn func(context.Context, A) (R, error)) operation {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if err := decodeVariables(raw, &args); err != nil {
			return nil, err
		}
		return fn(ctx, args)
	}
}

// mutation adapts a resolver that reports failures inside its payload.
func mutation[A any, R any](fn func(context.Context, A) R) operation {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if err := decodeVariables(raw, &args); err != nil {
			return nil, err
		}
		return fn(ctx, args), nil
	}
}

func decodeVariables(raw json.RawMessage, dest any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid variables: %w", err)
	}
	return nil
}
