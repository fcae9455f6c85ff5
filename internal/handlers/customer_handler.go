package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Keoroanthony/go-crm/internal/models"
	"github.com/Keoroanthony/go-crm/internal/store"
)

const (
	msgCustomerCreated = "Customer created successfully"
	msgEmailExists     = "Email already exists"
	msgInvalidPhone    = "Invalid phone format (e.g., +1234567890 or 123-456-7890)"
	msgNameEmailNeeded = "Name and email are required"
)

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (in CustomerInput) normalize() CustomerInput {
	return CustomerInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
}

type CreateCustomerArgs struct {
	Input CustomerInput `json:"input"`
}

type CreateCustomerPayload struct {
	Customer *CustomerNode `json:"customer"`
	Message  string        `json:"message"`
	Success  bool          `json:"success"`
}

type BulkCreateCustomersArgs struct {
	Input []CustomerInput `json:"input"`
}

type BulkCreateCustomersPayload struct {
	Customers []CustomerNode `json:"customers"`
	Errors    []string       `json:"errors"`
	Success   bool           `json:"success"`
}

func (r *Resolver) CreateCustomer(ctx context.Context, args CreateCustomerArgs) CreateCustomerPayload {
	in := args.Input.normalize()
	if in.Name == "" || in.Email == "" {
		return CreateCustomerPayload{Message: msgNameEmailNeeded}
	}

	exists, err := r.store.EmailExists(ctx, in.Email)
	if err != nil {
		return CreateCustomerPayload{Message: "Error: " + err.Error()}
	}
	if exists {
		return CreateCustomerPayload{Message: msgEmailExists}
	}
	if err := models.ValidatePhone(in.Phone); err != nil {
		return CreateCustomerPayload{Message: msgInvalidPhone}
	}

	customer := models.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := r.store.CreateCustomer(ctx, &customer); err != nil {
		return CreateCustomerPayload{Message: customerErrorMessage(err)}
	}

	node := customerToNode(customer)
	return CreateCustomerPayload{Customer: &node, Message: msgCustomerCreated, Success: true}
}

// BulkCreateCustomers validates every item on its own inside one batch
// transaction. Items that fail are reported and skipped; the rest are
// committed together.
func (r *Resolver) BulkCreateCustomers(ctx context.Context, args BulkCreateCustomersArgs) BulkCreateCustomersPayload {
	var (
		created []models.Customer
		errs    []string
	)

	err := r.store.Transaction(ctx, func(tx *store.Store) error {
		for i, raw := range args.Input {
			in := raw.normalize()
			if in.Name == "" || in.Email == "" {
				errs = append(errs, fmt.Sprintf("%s (item %d)", msgNameEmailNeeded, i+1))
				continue
			}

			savepoint := fmt.Sprintf("bulk_customer_%d", i)
			if err := tx.Savepoint(savepoint); err != nil {
				return err
			}

			customer, itemErr := createBulkItem(ctx, tx, in)
			if itemErr == "" {
				created = append(created, customer)
				continue
			}

			errs = append(errs, itemErr)
			if err := tx.RollbackTo(savepoint); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("API: bulkCreateCustomers rolled back: %v", err)
		return BulkCreateCustomersPayload{
			Customers: []CustomerNode{},
			Errors:    append(errs, "Error: "+err.Error()),
		}
	}

	if errs == nil {
		errs = []string{}
	}
	return BulkCreateCustomersPayload{
		Customers: customersToNodes(created),
		Errors:    errs,
		Success:   len(created) > 0,
	}
}

// createBulkItem returns the created customer, or a message describing why
// the item was skipped.
func createBulkItem(ctx context.Context, tx *store.Store, in CustomerInput) (models.Customer, string) {
	exists, err := tx.EmailExists(ctx, in.Email)
	if err != nil {
		return models.Customer{}, fmt.Sprintf("Failed to create %s: %v", in.Name, err)
	}
	if exists {
		return models.Customer{}, fmt.Sprintf("Email %s already exists", in.Email)
	}
	if err := models.ValidatePhone(in.Phone); err != nil {
		return models.Customer{}, fmt.Sprintf("Invalid phone for %s", in.Name)
	}

	customer := models.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := tx.CreateCustomer(ctx, &customer); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return models.Customer{}, fmt.Sprintf("Email %s already exists", in.Email)
		}
		return models.Customer{}, fmt.Sprintf("Failed to create %s: %v", in.Name, err)
	}
	return customer, ""
}

func customerErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		return msgEmailExists
	case errors.Is(err, models.ErrInvalidPhone):
		return msgInvalidPhone
	default:
		return "Error: " + err.Error()
	}
}
