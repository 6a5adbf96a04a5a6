package ordering

import (
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	EventTypeOrderPlaced        = "ordering.order.placed"
	EventTypeOrderStatusChanged = "ordering.order.status_changed"
	EventTypeOrderCancelled     = "ordering.order.cancelled"
)

// OrderPlacedEvent is raised when a new order is created at checkout
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	UserID        string          `json:"user_id"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
}

// NewOrderPlacedEvent creates a new order placed event
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		Total:           order.Total,
		ItemCount:       len(order.Items),
		CustomerName:    order.Customer.Name,
		CustomerPhone:   order.Customer.Phone,
	}
}

// OrderStatusChangedEvent is raised on every lifecycle transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	UserID      string      `json:"user_id"`
	FromStatus  OrderStatus `json:"from_status"`
	ToStatus    OrderStatus `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new status changed event
func NewOrderStatusChangedEvent(order *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		FromStatus:      from,
		ToStatus:        to,
	}
}

// OrderCancelledEvent is raised when an order enters cancelled. Emitted in
// addition to the generic status change so inventory release handlers can
// subscribe to cancellations alone.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	UserID      string      `json:"user_id"`
	FromStatus  OrderStatus `json:"from_status"`
}

// NewOrderCancelledEvent creates a new order cancelled event
func NewOrderCancelledEvent(order *Order, from OrderStatus) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		FromStatus:      from,
	}
}
