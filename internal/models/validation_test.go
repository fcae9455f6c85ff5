package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"", "+14155551234", "415-555-1234", "1234567890", "+123456789012345"}
	for _, phone := range valid {
		assert.NoError(t, ValidatePhone(phone), phone)
	}

	invalid := []string{"555-1234", "+1415", "4155551234567890", "415 555 1234", "(415) 555-1234", "abc-def-ghij"}
	for _, phone := range invalid {
		assert.ErrorIs(t, ValidatePhone(phone), ErrInvalidPhone, phone)
	}
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(decimal.RequireFromString("0.01")))
	assert.NoError(t, ValidatePrice(decimal.RequireFromString("999.99")))
	assert.ErrorIs(t, ValidatePrice(decimal.Zero), ErrPriceNotPositive)
	assert.ErrorIs(t, ValidatePrice(decimal.RequireFromString("-5")), ErrPriceNotPositive)
}

func TestValidateStock(t *testing.T) {
	assert.NoError(t, ValidateStock(0))
	assert.NoError(t, ValidateStock(42))
	assert.ErrorIs(t, ValidateStock(-1), ErrNegativeStock)
}

func TestSumPrices(t *testing.T) {
	products := []Product{
		{Price: decimal.RequireFromString("10.00")},
		{Price: decimal.RequireFromString("5.50")},
	}
	assert.True(t, decimal.RequireFromString("15.50").Equal(SumPrices(products)))
	assert.True(t, decimal.Zero.Equal(SumPrices(nil)))
}
