package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/compras-io/compras/services/products/internal/models"
	"github.com/compras-io/compras/services/products/internal/repo"
	"github.com/compras-io/compras/services/products/internal/service"
	"github.com/compras-io/compras/services/products/internal/transport"
)

func newTestService(t *testing.T) *service.ProductService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "products.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	return &service.ProductService{Repo: &repo.GormRepo{DB: db}}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func validRequest() transport.SaveProductRequest {
	return transport.SaveProductRequest{
		Name:          "Papel A4",
		UnitPrice:     decimal.New(1250, -2),
		PurchasePrice: decimal.New(1000, -2),
		Stock:         40,
		SupplierID:    1,
	}
}

func TestCreateProduct_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.True(t, created.Active, "estado defaults to true")

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Papel A4", got.Name)
	assert.True(t, got.UnitPrice.Equal(dec(t, "12.50")))
	assert.True(t, got.PurchasePrice.Equal(dec(t, "10.00")))
	assert.Equal(t, 40, got.Stock)
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*transport.SaveProductRequest)
	}{
		{name: "empty name", mutate: func(r *transport.SaveProductRequest) { r.Name = "" }},
		{name: "negative unit price", mutate: func(r *transport.SaveProductRequest) { r.UnitPrice = decimal.New(-1, 0) }},
		{name: "negative purchase price", mutate: func(r *transport.SaveProductRequest) { r.PurchasePrice = decimal.New(-1, 0) }},
		{name: "negative stock", mutate: func(r *transport.SaveProductRequest) { r.Stock = -1 }},
		{name: "missing supplier", mutate: func(r *transport.SaveProductRequest) { r.SupplierID = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateProduct(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestListProducts_FiltersInactiveAndBySupplier(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.Name = "Tinta negra"
	other.SupplierID = 2
	_, err = svc.CreateProduct(ctx, other)
	require.NoError(t, err)

	inactive := validRequest()
	inactive.Name = "Descontinuado"
	off := false
	inactive.Active = &off
	_, err = svc.CreateProduct(ctx, inactive)
	require.NoError(t, err)

	all, err := svc.ListProducts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2, "inactive products are hidden from the list")

	bySupplier, err := svc.ListProducts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, first.ID, bySupplier[0].ID)
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Name = "Papel A3"
	req.Stock = 15
	updated, err := svc.UpdateProduct(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Papel A3", updated.Name)
	assert.Equal(t, 15, updated.Stock)

	_, err = svc.UpdateProduct(ctx, created.ID+100, validRequest())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteProduct(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
