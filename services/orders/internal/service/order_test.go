package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/compras-io/compras/services/orders/internal/models"
	"github.com/compras-io/compras/services/orders/internal/repo"
	"github.com/compras-io/compras/services/orders/internal/service"
	"github.com/compras-io/compras/services/orders/internal/transport"
)

func newTestStore(t *testing.T) *repo.GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PurchaseOrder{}, &models.OrderLine{}))

	return &repo.GormStore{DB: db}
}

func newTestService(t *testing.T) (*service.OrderService, *repo.GormStore) {
	t.Helper()
	store := newTestStore(t)
	return &service.OrderService{Store: store}, store
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func uintPtr(v uint) *uint { return &v }

func countRows(t *testing.T, store *repo.GormStore, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, store.DB.Model(model).Count(&n).Error)
	return n
}

func TestCreateCompleteOrder_ComputesExactTotal(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateCompleteOrder(ctx, transport.CreateCompleteOrderRequest{
		SupplierID: uintPtr(7),
		Items: []transport.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: dec(t, "10.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: dec(t, "5.50")},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	assert.True(t, order.Active)
	assert.EqualValues(t, 7, order.SupplierID)
	assert.True(t, order.Total.Equal(dec(t, "25.50")), "total = %s", order.Total)

	require.Len(t, order.Lines, 2)
	assert.True(t, order.Lines[0].LineTotal.Equal(dec(t, "20.00")))
	assert.True(t, order.Lines[1].LineTotal.Equal(dec(t, "5.50")))
	for _, line := range order.Lines {
		assert.Equal(t, order.ID, line.OrderID)
		assert.NotZero(t, line.ID)
	}

	// the persisted aggregate matches what the workflow returned
	stored, err := store.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(dec(t, "25.50")))
	require.Len(t, stored.Lines, 2)
}

func TestCreateCompleteOrder_MissingSupplier(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)

	_, err := svc.CreateCompleteOrder(context.Background(), transport.CreateCompleteOrderRequest{
		SupplierID: nil,
		Items: []transport.OrderItem{
			{ProductID: 1, Quantity: 1, UnitPrice: dec(t, "1.00")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)

	assert.Zero(t, countRows(t, store, &models.PurchaseOrder{}))
	assert.Zero(t, countRows(t, store, &models.OrderLine{}))
}

func TestCreateCompleteOrder_EmptyItems(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)

	_, err := svc.CreateCompleteOrder(context.Background(), transport.CreateCompleteOrderRequest{
		SupplierID: uintPtr(1),
		Items:      nil,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)

	assert.Zero(t, countRows(t, store, &models.PurchaseOrder{}))
}

func TestCreateCompleteOrder_InvalidItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item transport.OrderItem
	}{
		{name: "zero quantity", item: transport.OrderItem{ProductID: 1, Quantity: 0, UnitPrice: decimal.New(100, -2)}},
		{name: "negative quantity", item: transport.OrderItem{ProductID: 1, Quantity: -3, UnitPrice: decimal.New(100, -2)}},
		{name: "negative price", item: transport.OrderItem{ProductID: 1, Quantity: 1, UnitPrice: decimal.New(-100, -2)}},
		{name: "missing product id", item: transport.OrderItem{ProductID: 0, Quantity: 1, UnitPrice: decimal.New(100, -2)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, store := newTestService(t)

			_, err := svc.CreateCompleteOrder(context.Background(), transport.CreateCompleteOrderRequest{
				SupplierID: uintPtr(1),
				Items:      []transport.OrderItem{tt.item},
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)

			assert.Zero(t, countRows(t, store, &models.PurchaseOrder{}))
			assert.Zero(t, countRows(t, store, &models.OrderLine{}))
		})
	}
}

func TestCreateCompleteOrder_ZeroPriceBoundary(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	order, err := svc.CreateCompleteOrder(context.Background(), transport.CreateCompleteOrderRequest{
		SupplierID: uintPtr(1),
		Items: []transport.OrderItem{
			{ProductID: 9, Quantity: 1, UnitPrice: dec(t, "0.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.True(t, order.Total.IsZero())
	assert.True(t, order.Lines[0].LineTotal.IsZero())
}

// faultStore makes the Nth SaveLine fail, including inside a transaction.
type faultStore struct {
	service.OrderStore
	failOn int
	saves  *int
}

func (s *faultStore) SaveLine(ctx context.Context, line *models.OrderLine) error {
	*s.saves++
	if *s.saves == s.failOn {
		return errors.New("simulated storage failure")
	}
	return s.OrderStore.SaveLine(ctx, line)
}

func (s *faultStore) Transact(ctx context.Context, fn func(service.OrderStore) error) error {
	return s.OrderStore.Transact(ctx, func(tx service.OrderStore) error {
		return fn(&faultStore{OrderStore: tx, failOn: s.failOn, saves: s.saves})
	})
}

func TestCreateCompleteOrder_LineFaultLeavesNothingBehind(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	saves := 0
	svc := &service.OrderService{Store: &faultStore{OrderStore: store, failOn: 2, saves: &saves}}

	_, err := svc.CreateCompleteOrder(context.Background(), transport.CreateCompleteOrderRequest{
		SupplierID: uintPtr(3),
		Items: []transport.OrderItem{
			{ProductID: 1, Quantity: 1, UnitPrice: dec(t, "2.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: dec(t, "3.00")},
			{ProductID: 3, Quantity: 1, UnitPrice: dec(t, "4.00")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrWorkflow)
	assert.Equal(t, 2, saves, "the failing save must abort the remaining lines")

	// rollback leaves neither the order shell nor the first written line
	assert.Zero(t, countRows(t, store, &models.PurchaseOrder{}))
	assert.Zero(t, countRows(t, store, &models.OrderLine{}))
}

func TestDeleteOrder_CascadesToLines(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateCompleteOrder(ctx, transport.CreateCompleteOrderRequest{
		SupplierID: uintPtr(2),
		Items: []transport.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: dec(t, "1.25")},
			{ProductID: 2, Quantity: 4, UnitPrice: dec(t, "0.75")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	lines, err := store.FindLinesByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = svc.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetOrder_Idempotent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCompleteOrder(ctx, transport.CreateCompleteOrderRequest{
		SupplierID: uintPtr(5),
		Items: []transport.OrderItem{
			{ProductID: 4, Quantity: 3, UnitPrice: dec(t, "9.99")},
		},
	})
	require.NoError(t, err)

	first, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	second, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.SupplierID, second.SupplierID)
	assert.True(t, first.Total.Equal(second.Total))
	require.Equal(t, len(first.Lines), len(second.Lines))
	for i := range first.Lines {
		assert.Equal(t, first.Lines[i].ID, second.Lines[i].ID)
		assert.True(t, first.Lines[i].LineTotal.Equal(second.Lines[i].LineTotal))
	}
}

func TestListOrders_NewestFirst(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 3; i++ {
		order, err := svc.CreateCompleteOrder(ctx, transport.CreateCompleteOrderRequest{
			SupplierID: uintPtr(1),
			Items: []transport.OrderItem{
				{ProductID: uint(i + 1), Quantity: 1, UnitPrice: dec(t, "1.00")},
			},
		})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	orders, err := svc.ListOrders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[1], orders[1].ID)
	require.Len(t, orders[0].Lines, 1, "list must include the aggregate lines")
}

func TestCreateOrder_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{SupplierID: 0, Total: dec(t, "1.00")})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.CreateOrder(ctx, transport.CreateOrderRequest{SupplierID: 1, Total: dec(t, "-1.00")})
	assert.ErrorIs(t, err, service.ErrValidation)

	order, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{SupplierID: 1, Total: dec(t, "10.00")})
	require.NoError(t, err)
	assert.True(t, order.Active, "active defaults to true")
}

func TestUpdateOrder(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{SupplierID: 1, Total: dec(t, "10.00")})
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(ctx, order.ID, transport.UpdateOrderRequest{
		SupplierID: 2,
		Total:      dec(t, "12.00"),
		Active:     false,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated.SupplierID)
	assert.True(t, updated.Total.Equal(dec(t, "12.00")))
	assert.False(t, updated.Active)

	_, err = svc.UpdateOrder(ctx, order.ID+100, transport.UpdateOrderRequest{SupplierID: 2, Total: dec(t, "1.00")})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestLineCRUD(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{SupplierID: 1, Total: dec(t, "0.00")})
	require.NoError(t, err)

	line, err := svc.AddLine(ctx, order.ID, transport.SaveLineRequest{
		ProductID: 8,
		Quantity:  3,
		UnitPrice: dec(t, "2.50"),
	})
	require.NoError(t, err)
	assert.True(t, line.LineTotal.Equal(dec(t, "7.50")), "line_total computed server-side")

	updated, err := svc.UpdateLine(ctx, order.ID, line.ID, transport.SaveLineRequest{
		ProductID: 8,
		Quantity:  2,
		UnitPrice: dec(t, "2.50"),
	})
	require.NoError(t, err)
	assert.True(t, updated.LineTotal.Equal(dec(t, "5.00")))

	// the order total stays frozen at creation; line edits never touch it
	reloaded, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Total.Equal(dec(t, "0.00")))

	_, err = svc.AddLine(ctx, order.ID+100, transport.SaveLineRequest{ProductID: 1, Quantity: 1, UnitPrice: dec(t, "1.00")})
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.DeleteLine(ctx, order.ID, line.ID))

	lines, err := svc.ListLines(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDeleteLine_WrongOrder(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{SupplierID: 1, Total: dec(t, "0.00")})
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{SupplierID: 1, Total: dec(t, "0.00")})
	require.NoError(t, err)

	line, err := svc.AddLine(ctx, first.ID, transport.SaveLineRequest{ProductID: 1, Quantity: 1, UnitPrice: dec(t, "1.00")})
	require.NoError(t, err)

	err = svc.DeleteLine(ctx, second.ID, line.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	lines, err := svc.ListLines(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
