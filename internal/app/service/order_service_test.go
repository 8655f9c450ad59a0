package service

import (
	"errors"
	"testing"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/vyanhpham/rosea-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return NewOrderService(repository.NewOrderRepository(testDB), testDB), testDB
}

func validOrderInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: 1, ProductName: "Serum Vitamin C", SKU: "SRM-01", Price: 350000, Quantity: 2},
			{ProductID: 2, ProductName: "Son kem lì", VariantID: ptr(uint(7)), VariantName: "Đỏ gạch", SKU: "SON-01", Price: 260000, Quantity: 1},
		},
		ShippingCost:    30000,
		Total:           990000,
		CustomerName:    "Nguyễn Thị Hoa",
		CustomerPhone:   "0901234567",
		ShippingAddress: "12 Lý Thường Kiệt, Quận 10, TP.HCM",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	orderService, _ := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-\d{6}-\d{4}$`, order.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, int64(960000), order.Subtotal, "subtotal computed from line items when omitted")
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(700000), order.Items[0].Total)
	assert.Equal(t, int64(260000), order.Items[1].Total)
}

// collidingOrderRepo rejects the first N inserts with the unique-index
// violation a concurrently taken order number produces.
type collidingOrderRepo struct {
	repository.OrderRepository
	failures int
	attempts int
}

func (r *collidingOrderRepo) Create(order *model.Order) error {
	r.attempts++
	if r.attempts <= r.failures {
		return errors.New("UNIQUE constraint failed: orders.order_number")
	}
	return r.OrderRepository.Create(order)
}

func TestOrderService_CreateOrderNumberCollisionRetries(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	orderRepo := &collidingOrderRepo{
		OrderRepository: repository.NewOrderRepository(testDB),
		failures:        3,
	}
	orderService := NewOrderService(orderRepo, testDB)

	order, err := orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)

	assert.Equal(t, 4, orderRepo.attempts)
	assert.Regexp(t, `^ORD-\d{6}-\d{4}$`, order.OrderNumber)
}

func TestOrderService_CreateOrderNumberExhausted(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	orderRepo := &collidingOrderRepo{
		OrderRepository: repository.NewOrderRepository(testDB),
		failures:        util.OrderNumberAttempts,
	}
	orderService := NewOrderService(orderRepo, testDB)

	_, err = orderService.CreateOrder(validOrderInput())
	assert.ErrorIs(t, err, ErrOrderNumberExhausted)
	assert.Equal(t, util.OrderNumberAttempts, orderRepo.attempts)
}

func TestOrderService_CreateOrderInsertErrorPassesThrough(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	failure := errors.New("database is locked")
	orderRepo := &failingOrderRepo{
		OrderRepository: repository.NewOrderRepository(testDB),
		err:             failure,
	}
	orderService := NewOrderService(orderRepo, testDB)

	_, err = orderService.CreateOrder(validOrderInput())
	assert.ErrorIs(t, err, failure)
}

type failingOrderRepo struct {
	repository.OrderRepository
	err error
}

func (r *failingOrderRepo) Create(order *model.Order) error {
	return r.err
}

func TestOrderService_CreateOrderSubtotal(t *testing.T) {
	orderService, _ := setupOrderServiceTest(t)

	t.Run("Matching subtotal accepted", func(t *testing.T) {
		input := validOrderInput()
		input.Subtotal = ptr(int64(960000))

		order, err := orderService.CreateOrder(input)
		require.NoError(t, err)
		assert.Equal(t, int64(960000), order.Subtotal)
	})

	t.Run("Mismatching subtotal rejected", func(t *testing.T) {
		input := validOrderInput()
		input.Subtotal = ptr(int64(123456))

		_, err := orderService.CreateOrder(input)
		assert.ErrorIs(t, err, ErrSubtotalMismatch)
	})
}

func TestOrderService_CreateOrderValidation(t *testing.T) {
	orderService, _ := setupOrderServiceTest(t)

	tests := []struct {
		name    string
		mutate  func(*CreateOrderInput)
		wantErr error
	}{
		{
			name:    "No items",
			mutate:  func(in *CreateOrderInput) { in.Items = nil },
			wantErr: ErrEmptyOrder,
		},
		{
			name:    "Missing customer name",
			mutate:  func(in *CreateOrderInput) { in.CustomerName = "" },
			wantErr: ErrOrderValidation,
		},
		{
			name:    "Missing phone",
			mutate:  func(in *CreateOrderInput) { in.CustomerPhone = "" },
			wantErr: ErrOrderValidation,
		},
		{
			name:    "Missing shipping address",
			mutate:  func(in *CreateOrderInput) { in.ShippingAddress = "" },
			wantErr: ErrOrderValidation,
		},
		{
			name:    "Zero total",
			mutate:  func(in *CreateOrderInput) { in.Total = 0 },
			wantErr: ErrOrderValidation,
		},
		{
			name:    "Zero quantity line",
			mutate:  func(in *CreateOrderInput) { in.Items[0].Quantity = 0 },
			wantErr: ErrOrderValidation,
		},
		{
			name:    "Negative price line",
			mutate:  func(in *CreateOrderInput) { in.Items[0].Price = -1 },
			wantErr: ErrOrderValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validOrderInput()
			tt.mutate(&input)

			_, err := orderService.CreateOrder(input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrderService_SnapshotSurvivesCatalogChanges(t *testing.T) {
	orderService, testDB := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)

	// mutate and deactivate catalog rows the snapshot points at
	require.NoError(t, testDB.Exec("UPDATE products SET name = 'renamed' WHERE id = 1").Error)
	require.NoError(t, testDB.Exec("UPDATE product_variants SET price = 1 WHERE id = 7").Error)

	reloaded, err := orderService.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, "Serum Vitamin C", reloaded.Items[0].ProductName)
	assert.Equal(t, int64(260000), reloaded.Items[1].Price)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderService, _ := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)

	t.Run("Forward transitions", func(t *testing.T) {
		for _, status := range []model.OrderStatus{
			model.OrderStatusProcessing,
			model.OrderStatusShipped,
			model.OrderStatusDelivered,
		} {
			updated, err := orderService.UpdateOrder(order.ID, &status, nil)
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("Delivered is terminal", func(t *testing.T) {
		status := model.OrderStatusPending
		_, err := orderService.UpdateOrder(order.ID, &status, nil)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("Same status is a no-op", func(t *testing.T) {
		status := model.OrderStatusDelivered
		updated, err := orderService.UpdateOrder(order.ID, &status, nil)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, updated.Status)
	})

	t.Run("Skipping a stage rejected", func(t *testing.T) {
		fresh, err := orderService.CreateOrder(validOrderInput())
		require.NoError(t, err)

		status := model.OrderStatusShipped
		_, err = orderService.UpdateOrder(fresh.ID, &status, nil)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		status := model.OrderStatus("cancelled")
		_, err := orderService.UpdateOrder(order.ID, &status, nil)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("Notes only", func(t *testing.T) {
		notes := "Giao giờ hành chính"
		updated, err := orderService.UpdateOrder(order.ID, nil, &notes)
		require.NoError(t, err)
		assert.Equal(t, notes, updated.Notes)
		assert.Equal(t, model.OrderStatusDelivered, updated.Status)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	orderService, testDB := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)

	require.NoError(t, orderService.DeleteOrder(order.ID))

	_, err = orderService.GetOrderByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// line items go with the order, the delete is not a soft delete
	var itemCount int64
	require.NoError(t, testDB.Model(&model.OrderItem{}).
		Where("order_id = ?", order.ID).
		Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)

	t.Run("Already deleted", func(t *testing.T) {
		assert.ErrorIs(t, orderService.DeleteOrder(order.ID), ErrOrderNotFound)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	orderService, _ := setupOrderServiceTest(t)

	first, err := orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)
	_, err = orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)

	status := model.OrderStatusProcessing
	_, err = orderService.UpdateOrder(first.ID, &status, nil)
	require.NoError(t, err)

	t.Run("All orders", func(t *testing.T) {
		orders, total, err := orderService.ListOrders(OrderListOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, orders, 2)
	})

	t.Run("Filter by status", func(t *testing.T) {
		orders, total, err := orderService.ListOrders(OrderListOptions{Status: model.OrderStatusProcessing})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("Pagination keeps total", func(t *testing.T) {
		orders, total, err := orderService.ListOrders(OrderListOptions{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, orders, 1)
	})
}

func TestOrderService_ExportOrders(t *testing.T) {
	orderService, _ := setupOrderServiceTest(t)

	_, err := orderService.CreateOrder(validOrderInput())
	require.NoError(t, err)

	data, err := orderService.ExportOrders()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx is a zip container
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
