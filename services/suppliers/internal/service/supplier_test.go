package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/compras-io/compras/services/suppliers/internal/models"
	"github.com/compras-io/compras/services/suppliers/internal/repo"
	"github.com/compras-io/compras/services/suppliers/internal/service"
	"github.com/compras-io/compras/services/suppliers/internal/transport"
)

func newTestService(t *testing.T) *service.SupplierService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "suppliers.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Supplier{}))

	return &service.SupplierService{Repo: &repo.GormRepo{DB: db}}
}

func validRequest() transport.SaveSupplierRequest {
	return transport.SaveSupplierRequest{
		Name:    "Libreria Central",
		RUC:     "20123456789",
		Address: "Av. Principal 123",
		Phone:   "01-555-0101",
	}
}

func TestCreateSupplier_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, validRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.True(t, created.Active, "estado defaults to true")

	got, err := svc.GetSupplier(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Libreria Central", got.Name)
	assert.Equal(t, "20123456789", got.RUC)
	assert.Equal(t, "Av. Principal 123", got.Address)
	assert.Equal(t, "01-555-0101", got.Phone)
}

func TestCreateSupplier_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*transport.SaveSupplierRequest)
	}{
		{name: "empty name", mutate: func(r *transport.SaveSupplierRequest) { r.Name = "" }},
		{name: "empty ruc", mutate: func(r *transport.SaveSupplierRequest) { r.RUC = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateSupplier(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestListSuppliers_SortedByName(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	second := validRequest()
	second.Name = "Zeta Importaciones"
	_, err := svc.CreateSupplier(ctx, second)
	require.NoError(t, err)

	first := validRequest()
	first.Name = "Andes Papeles"
	first.RUC = "20987654321"
	_, err = svc.CreateSupplier(ctx, first)
	require.NoError(t, err)

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, "Andes Papeles", suppliers[0].Name)
	assert.Equal(t, "Zeta Importaciones", suppliers[1].Name)
}

func TestListSuppliers_KeepsInactiveVisible(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	off := false
	req.Active = &off
	_, err = svc.UpdateSupplier(ctx, created.ID, req)
	require.NoError(t, err)

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1, "deactivated suppliers stay listed for re-activation")
	assert.Equal(t, created.ID, suppliers[0].ID)
	assert.False(t, suppliers[0].Active)
}

func TestUpdateSupplier(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Phone = "01-555-0202"
	off := false
	req.Active = &off
	updated, err := svc.UpdateSupplier(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "01-555-0202", updated.Phone)
	assert.False(t, updated.Active)

	_, err = svc.UpdateSupplier(ctx, created.ID+100, validRequest())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteSupplier(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSupplier(ctx, created.ID))

	_, err = svc.GetSupplier(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteSupplier(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
