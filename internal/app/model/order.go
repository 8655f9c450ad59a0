package model

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// statusTransitions is the forward-only lifecycle table. Delivered is
// terminal; there is no cancellation state.
var statusTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// ValidStatus reports whether s is a known order status
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to the
// next. Setting the current status again is a no-op and always allowed.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	return statusTransitions[from] == to
}

// Order is a ledger entry. Orders are immutable after creation except for
// status and notes, and unlike catalog entities they are hard-deletable.
type Order struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	OrderNumber     string      `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`
	Subtotal        int64       `gorm:"not null" json:"subtotal"`
	ShippingCost    int64       `gorm:"default:0" json:"shipping_cost"`
	Discount        int64       `gorm:"default:0" json:"discount"`
	Total           int64       `gorm:"not null" json:"total"`
	Status          OrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CustomerName    string      `gorm:"not null" json:"customer_name"`
	CustomerPhone   string      `gorm:"type:varchar(20);not null" json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	ShippingAddress string      `gorm:"type:text;not null" json:"shipping_address"`
	Notes           string      `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots the purchased line at creation time. Product and
// variant references are weak: the named fields are never re-derived from
// the live catalog, so later edits cannot corrupt the ledger.
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	ProductName string    `gorm:"not null" json:"product_name"`
	VariantID   *uint     `gorm:"index" json:"variant_id,omitempty"`
	VariantName string    `json:"variant_name,omitempty"`
	SKU         string    `gorm:"type:varchar(64)" json:"sku,omitempty"`
	Price       int64     `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Total       int64     `gorm:"not null" json:"total"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
