package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

// StockItem is the inventory ledger entry for a single product. It is the
// aggregate root for stock operations and the single source of truth for
// "can this quantity be sold". One StockItem exists per product.
type StockItem struct {
	shared.BaseAggregateRoot
	ProductID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Stock             int64     `gorm:"not null;default:0"`
	LowStockThreshold int64     `gorm:"not null;default:10"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a ledger entry for a product
func NewStockItem(productID uuid.UUID, initialStock, lowStockThreshold int64) (*StockItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if initialStock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial stock cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Stock:             initialStock,
		LowStockThreshold: lowStockThreshold,
	}, nil
}

// Reserve decrements available stock to back an order's line item. It is the
// only path that decrements stock for a sale. Fails with ErrInsufficientStock
// when the requested quantity exceeds what is available.
//
// The returned movement must be persisted in the same transaction as the
// stock change so every mutation stays traceable to one order.
func (i *StockItem) Reserve(quantity int64, orderID uuid.UUID) (*StockMovement, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Reservation requires an order ID")
	}
	if quantity > i.Stock {
		return nil, shared.ErrInsufficientStock
	}

	i.Stock -= quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	if i.Stock < 0 {
		return nil, shared.NewIntegrityError("stock_non_negative",
			"stock for product %s went negative (%d)", i.ProductID, i.Stock)
	}

	i.AddDomainEvent(NewStockReservedEvent(i, quantity, orderID))
	if i.IsLowStock() {
		i.AddDomainEvent(NewStockBelowThresholdEvent(i))
	}

	return NewStockMovement(i.ProductID, -quantity, MovementReasonReserve, orderID), nil
}

// Release adds quantity back to available stock. Used when an order that
// previously reserved stock transitions into cancelled. Unconditional.
func (i *StockItem) Release(quantity int64, orderID uuid.UUID) (*StockMovement, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Release requires an order ID")
	}

	i.Stock += quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockReleasedEvent(i, quantity, orderID))

	return NewStockMovement(i.ProductID, quantity, MovementReasonRelease, orderID), nil
}

// Restock is the direct admin override: it sets the absolute stock level and
// threshold without going through the reserve/release accounting path.
func (i *StockItem) Restock(newStock, newThreshold int64) (*StockMovement, error) {
	if newStock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock level cannot be negative")
	}
	if newThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	delta := newStock - i.Stock
	i.Stock = newStock
	i.LowStockThreshold = newThreshold
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockRestockedEvent(i, delta))

	return NewStockMovement(i.ProductID, delta, MovementReasonRestock, uuid.Nil), nil
}

// CanFulfill reports whether the available stock covers the quantity
func (i *StockItem) CanFulfill(quantity int64) bool {
	return quantity <= i.Stock
}

// IsLowStock is a derived read: stock at or below the threshold.
// Never stored redundantly.
func (i *StockItem) IsLowStock() bool {
	return i.Stock <= i.LowStockThreshold
}

// IsOutOfStock reports whether no stock is available
func (i *StockItem) IsOutOfStock() bool {
	return i.Stock == 0
}

// CheckIntegrity verifies the ledger invariant on read. A negative counter
// means the ledger was bypassed; that is fatal, not a business error.
func (i *StockItem) CheckIntegrity() error {
	if i.Stock < 0 {
		return shared.NewIntegrityError("stock_non_negative",
			"stock for product %s is negative (%d)", i.ProductID, i.Stock)
	}
	return nil
}
