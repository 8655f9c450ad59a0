package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"github.com/vyanhpham/rosea-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyOrder              = errors.New("order has no items")
	ErrOrderValidation         = errors.New("missing required order field")
	ErrSubtotalMismatch        = errors.New("subtotal does not match line items")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOrderNumberExhausted    = errors.New("order number generation exhausted")
)

// OrderItemInput carries a submitted cart line. Name, price, SKU and
// image are snapshotted verbatim; the live catalog is never consulted at
// order time.
type OrderItemInput struct {
	ProductID   uint
	ProductName string
	VariantID   *uint
	VariantName string
	SKU         string
	Price       int64
	Quantity    int
	ImageURL    string
}

type CreateOrderInput struct {
	Items           []OrderItemInput
	Subtotal        *int64
	ShippingCost    int64
	Discount        int64
	Total           int64
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	ShippingAddress string
	Notes           string
}

type OrderListOptions struct {
	Status model.OrderStatus
	Limit  int
	Offset int
}

type OrderService interface {
	CreateOrder(input CreateOrderInput) (*model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
	ListOrders(opts OrderListOptions) ([]model.Order, int64, error)
	UpdateOrder(id uint, status *model.OrderStatus, notes *string) (*model.Order, error)
	DeleteOrder(id uint) error
	ExportOrders() ([]byte, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
	}
}

// CreateOrder persists the order header and all line items atomically.
// The order number comes from a bounded generate-insert-retry loop: the
// unique index is the arbiter, a collision just burns one attempt.
func (s *orderService) CreateOrder(input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"item_count":     len(input.Items),
		"total":          input.Total,
		"customer_phone": input.CustomerPhone,
	})

	if err := validateOrderInput(input); err != nil {
		logger.Warn("Order validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	var itemsSum int64
	items := make([]model.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		lineTotal := in.Price * int64(in.Quantity)
		itemsSum += lineTotal
		items = append(items, model.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			VariantID:   in.VariantID,
			VariantName: in.VariantName,
			SKU:         in.SKU,
			Price:       in.Price,
			Quantity:    in.Quantity,
			Total:       lineTotal,
			ImageURL:    in.ImageURL,
		})
	}

	// subtotal is the items-only sum, never silently the grand total
	subtotal := itemsSum
	if input.Subtotal != nil {
		if *input.Subtotal != itemsSum {
			logger.Warn("Submitted subtotal disagrees with line items", map[string]interface{}{
				"submitted": *input.Subtotal,
				"computed":  itemsSum,
			})
			return nil, ErrSubtotalMismatch
		}
		subtotal = *input.Subtotal
	}

	var created *model.Order
	for attempt := 0; attempt < util.OrderNumberAttempts; attempt++ {
		order := &model.Order{
			OrderNumber:     util.GenerateOrderNumber(time.Now()),
			Subtotal:        subtotal,
			ShippingCost:    input.ShippingCost,
			Discount:        input.Discount,
			Total:           input.Total,
			Status:          model.OrderStatusPending,
			CustomerName:    input.CustomerName,
			CustomerPhone:   input.CustomerPhone,
			CustomerEmail:   input.CustomerEmail,
			ShippingAddress: input.ShippingAddress,
			Notes:           input.Notes,
			Items:           items,
		}

		err := s.orderRepo.Create(order)
		if err == nil {
			created = order
			break
		}
		if apperrors.IsDuplicateKeyOn(err, "order_number") {
			logger.Debug("Order number collision, retrying", map[string]interface{}{
				"order_number": order.OrderNumber,
				"attempt":      attempt + 1,
			})
			continue
		}
		logger.Error("Failed to create order", err, map[string]interface{}{
			"order_number": order.OrderNumber,
		})
		return nil, err
	}
	if created == nil {
		logger.Error("Order number space exhausted", ErrOrderNumberExhausted, map[string]interface{}{
			"attempts": util.OrderNumberAttempts,
		})
		return nil, ErrOrderNumberExhausted
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":     created.ID,
		"order_number": created.OrderNumber,
		"item_count":   len(created.Items),
		"total":        created.Total,
	})
	return created, nil
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(opts OrderListOptions) ([]model.Order, int64, error) {
	orders, total, err := s.orderRepo.FindWithFilter(repository.OrderFilter{
		Status: opts.Status,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
	if err != nil {
		logger.Error("Failed to list orders", err)
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateOrder applies a partial update of status and notes. Status moves
// through the forward-only lifecycle table; anything else is rejected.
func (s *orderService) UpdateOrder(id uint, status *model.OrderStatus, notes *string) (*model.Order, error) {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	if status != nil {
		if !model.ValidStatus(*status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, *status)
		}
		if !model.CanTransition(order.Status, *status) {
			logger.Warn("Rejected order status transition", map[string]interface{}{
				"order_id": id,
				"from":     order.Status,
				"to":       *status,
			})
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, *status)
		}
		order.Status = *status
	}
	if notes != nil {
		order.Notes = *notes
	}

	if err := s.db.Model(&model.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": order.Status,
			"notes":  order.Notes,
		}).Error; err != nil {
		logger.Error("Failed to update order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	logger.Info("Order updated successfully", map[string]interface{}{
		"order_id": id,
		"status":   order.Status,
	})
	return order, nil
}

// DeleteOrder removes the order permanently. Catalog entities only ever
// deactivate; orders are deletable by admins by design.
func (s *orderService) DeleteOrder(id uint) error {
	if _, err := s.GetOrderByID(id); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(id); err != nil {
		logger.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}

	logger.Info("Order deleted", map[string]interface{}{
		"order_id": id,
	})
	return nil
}

func validateOrderInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyOrder
	}
	if input.Total <= 0 {
		return fmt.Errorf("%w: total", ErrOrderValidation)
	}
	if input.CustomerName == "" {
		return fmt.Errorf("%w: customer_name", ErrOrderValidation)
	}
	if input.CustomerPhone == "" {
		return fmt.Errorf("%w: customer_phone", ErrOrderValidation)
	}
	if input.ShippingAddress == "" {
		return fmt.Errorf("%w: shipping_address", ErrOrderValidation)
	}
	for i, item := range input.Items {
		if item.ProductID == 0 || item.ProductName == "" {
			return fmt.Errorf("%w: items[%d].product", ErrOrderValidation, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity", ErrOrderValidation, i)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: items[%d].price", ErrOrderValidation, i)
		}
	}
	return nil
}
