package inventory

import (
	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

const (
	EventTypeStockReserved       = "inventory.stock.reserved"
	EventTypeStockReleased       = "inventory.stock.released"
	EventTypeStockRestocked      = "inventory.stock.restocked"
	EventTypeStockBelowThreshold = "inventory.stock.below_threshold"
)

// StockReservedEvent is raised when stock is decremented for an order
type StockReservedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int64     `json:"quantity"`
	OrderID        uuid.UUID `json:"order_id"`
	RemainingStock int64     `json:"remaining_stock"`
}

// NewStockReservedEvent creates a new stock reserved event
func NewStockReservedEvent(item *StockItem, quantity int64, orderID uuid.UUID) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, "StockItem", item.ID),
		ProductID:       item.ProductID,
		Quantity:        quantity,
		OrderID:         orderID,
		RemainingStock:  item.Stock,
	}
}

// StockReleasedEvent is raised when reserved stock returns to the pool
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int64     `json:"quantity"`
	OrderID        uuid.UUID `json:"order_id"`
	RemainingStock int64     `json:"remaining_stock"`
}

// NewStockReleasedEvent creates a new stock released event
func NewStockReleasedEvent(item *StockItem, quantity int64, orderID uuid.UUID) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, "StockItem", item.ID),
		ProductID:       item.ProductID,
		Quantity:        quantity,
		OrderID:         orderID,
		RemainingStock:  item.Stock,
	}
}

// StockRestockedEvent is raised on an admin stock override
type StockRestockedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Delta     int64     `json:"delta"`
	NewStock  int64     `json:"new_stock"`
}

// NewStockRestockedEvent creates a new restock event
func NewStockRestockedEvent(item *StockItem, delta int64) *StockRestockedEvent {
	return &StockRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRestocked, "StockItem", item.ID),
		ProductID:       item.ProductID,
		Delta:           delta,
		NewStock:        item.Stock,
	}
}

// StockBelowThresholdEvent is raised when a reservation drops stock to or
// below the product's low-stock threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Stock     int64     `json:"stock"`
	Threshold int64     `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new low stock event
func NewStockBelowThresholdEvent(item *StockItem) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "StockItem", item.ID),
		ProductID:       item.ProductID,
		Stock:           item.Stock,
		Threshold:       item.LowStockThreshold,
	}
}
