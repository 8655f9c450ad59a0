package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type OrderItemRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	ProductName string `json:"product_name" binding:"required"`
	VariantID   *uint  `json:"variant_id"`
	VariantName string `json:"variant_name"`
	SKU         string `json:"sku"`
	Price       int64  `json:"price" binding:"gte=0"`
	Quantity    int    `json:"quantity" binding:"required,gte=1"`
	ImageURL    string `json:"image_url"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal        *int64             `json:"subtotal"`
	ShippingCost    int64              `json:"shipping_cost" binding:"gte=0"`
	Discount        int64              `json:"discount" binding:"gte=0"`
	Total           int64              `json:"total" binding:"required,gt=0"`
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerPhone   string             `json:"customer_phone" binding:"required"`
	CustomerEmail   string             `json:"customer_email"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	Notes           string             `json:"notes"`
}

type UpdateOrderRequest struct {
	Status *model.OrderStatus `json:"status"`
	Notes  *string            `json:"notes"`
}

// CreateOrder places a new order from the storefront
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			VariantID:   item.VariantID,
			VariantName: item.VariantName,
			SKU:         item.SKU,
			Price:       item.Price,
			Quantity:    item.Quantity,
			ImageURL:    item.ImageURL,
		})
	}

	order, err := ctrl.orderService.CreateOrder(service.CreateOrderInput{
		Items:           items,
		Subtotal:        req.Subtotal,
		ShippingCost:    req.ShippingCost,
		Discount:        req.Discount,
		Total:           req.Total,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns orders, optionally filtered by status (admin)
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var opts service.OrderListOptions
	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !model.ValidStatus(status) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
			return
		}
		opts.Status = status
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid limit")
			return
		}
		opts.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid offset")
			return
		}
		opts.Offset = offset
	}

	orders, total, err := ctrl.orderService.ListOrders(opts)
	if err != nil {
		log.Error("Failed to fetch orders", err, nil)
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// GetOrder returns an order with its items (admin)
// GET /api/v1/admin/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(id)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateOrder updates order status and notes (admin)
// PUT /api/v1/admin/orders/:id
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.orderService.UpdateOrder(id, req.Status, req.Notes)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"order":   order,
	})
}

// DeleteOrder removes an order permanently (admin)
// DELETE /api/v1/admin/orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.orderService.DeleteOrder(id); err != nil {
		ctrl.respondOrderError(c, err, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}

// ExportOrders streams all orders as an xlsx workbook (admin)
// GET /api/v1/admin/orders/export
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.orderService.ExportOrders()
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		apperrors.InternalError(c, "Failed to export orders")
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (ctrl *OrderController) respondOrderError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrEmptyOrder):
		apperrors.BadRequest(c, apperrors.OrderEmptyItems, "Order must contain at least one item")
	case errors.Is(err, service.ErrOrderValidation):
		apperrors.BadRequest(c, apperrors.ValidationRequired, err.Error())
	case errors.Is(err, service.ErrSubtotalMismatch):
		apperrors.BadRequest(c, apperrors.OrderSubtotalMismatch, "Subtotal does not match line items")
	case errors.Is(err, service.ErrInvalidStatusTransition):
		apperrors.BadRequest(c, apperrors.OrderInvalidStatus, err.Error())
	case errors.Is(err, service.ErrOrderNumberExhausted):
		log.Error("Order number generation exhausted", err, nil)
		apperrors.InternalError(c, "Could not allocate an order number, please try again")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}
