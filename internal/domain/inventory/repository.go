package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

// StockItemRepository defines persistence operations for the inventory ledger.
//
// ReserveStock is the concurrency-critical operation: implementations must
// perform an atomic compare-and-decrement (stock >= quantity guarded in the
// same statement as the decrement) so that concurrent reservations for the
// last unit cannot both succeed. When the guard fails the implementation
// returns shared.ErrInsufficientStock without modifying anything.
type StockItemRepository interface {
	// Save persists a new ledger entry
	Save(ctx context.Context, item *StockItem) error
	// SaveWithLock persists an existing entry with optimistic locking
	SaveWithLock(ctx context.Context, item *StockItem) error
	// FindByProductID finds the ledger entry for a product
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockItem, error)
	// FindByProductIDs finds ledger entries for a set of products
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]StockItem, error)
	// FindLowStock lists entries at or below their low stock threshold
	FindLowStock(ctx context.Context, filter shared.Filter) ([]StockItem, error)
	// ReserveStock atomically decrements stock for an order line
	ReserveStock(ctx context.Context, productID uuid.UUID, quantity int64, orderID uuid.UUID) error
	// ReleaseStock atomically increments stock after a cancellation
	ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int64, orderID uuid.UUID) error
	// Delete removes the ledger entry for a product
	Delete(ctx context.Context, productID uuid.UUID) error
}

// StockMovementRepository defines persistence for the append-only audit trail
type StockMovementRepository interface {
	// Append persists a movement record; movements are never updated or deleted
	Append(ctx context.Context, movement *StockMovement) error
	// FindByProductID lists movements for a product, newest first
	FindByProductID(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	// FindByOrderID lists movements tied to an order
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]StockMovement, error)
}
