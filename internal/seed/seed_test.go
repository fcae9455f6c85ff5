package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keoroanthony/go-crm/internal/db/dbtest"
	"github.com/Keoroanthony/go-crm/internal/models"
	"github.com/Keoroanthony/go-crm/internal/seed"
)

func TestRunIsIdempotent(t *testing.T) {
	testDB := dbtest.New(t)
	ctx := context.Background()

	res, err := seed.Run(ctx, testDB)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Customers: 2, Products: 2}, res)

	res, err = seed.Run(ctx, testDB)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, res)

	var customers, products int64
	testDB.Model(&models.Customer{}).Count(&customers)
	testDB.Model(&models.Product{}).Count(&products)
	assert.Equal(t, int64(2), customers)
	assert.Equal(t, int64(2), products)

	var laptop models.Product
	require.NoError(t, testDB.Where("name = ?", "Seed Laptop").First(&laptop).Error)
	assert.Equal(t, "999.99", laptop.Price.StringFixed(2))
}
