package inventory

import (
	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

// MovementReason classifies why stock changed
type MovementReason string

const (
	MovementReasonReserve MovementReason = "reserve"
	MovementReasonRelease MovementReason = "release"
	MovementReasonRestock MovementReason = "restock"
)

// IsValid checks if the reason is a known MovementReason
func (r MovementReason) IsValid() bool {
	switch r {
	case MovementReasonReserve, MovementReasonRelease, MovementReasonRestock:
		return true
	}
	return false
}

// StockMovement is an append-only audit record of a single stock mutation.
// Every change to a product's stock is traceable to exactly one movement, and
// reserve/release movements to exactly one order, which makes replay and
// duplicate-adjustment detection possible.
type StockMovement struct {
	shared.BaseEntity
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Delta     int64          `gorm:"not null"`
	Reason    MovementReason `gorm:"size:20;not null"`
	OrderID   uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement record. OrderID is uuid.Nil for admin
// restock overrides, which are not tied to an order.
func NewStockMovement(productID uuid.UUID, delta int64, reason MovementReason, orderID uuid.UUID) *StockMovement {
	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Delta:      delta,
		Reason:     reason,
		OrderID:    orderID,
	}
}
