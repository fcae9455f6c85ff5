package models

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPhone     = errors.New("invalid phone format")
	ErrPriceNotPositive = errors.New("price must be positive")
	ErrNegativeStock    = errors.New("stock cannot be negative")
)

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$|^\d{3}-\d{3}-\d{4}$`)

var minPrice = decimal.RequireFromString("0.01")

// ValidatePhone accepts an empty phone; otherwise it must be 10-15 digits with
// an optional leading '+', or the 123-456-7890 form.
func ValidatePhone(phone string) error {
	if phone == "" || phonePattern.MatchString(phone) {
		return nil
	}
	return ErrInvalidPhone
}

func ValidatePrice(price decimal.Decimal) error {
	if price.LessThan(minPrice) {
		return ErrPriceNotPositive
	}
	return nil
}

func ValidateStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
