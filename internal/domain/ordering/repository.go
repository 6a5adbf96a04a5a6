package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders.
//
// SaveWithLock must compare the stored version against the aggregate's
// previous version in the update itself, returning
// shared.ErrConcurrencyConflict when they differ. Concurrent transitions for
// the same order serialize on this check: exactly one wins, the loser gets a
// stale-state error and nothing is merged silently.
type OrderRepository interface {
	// Save persists a new order
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists an existing order with optimistic locking
	SaveWithLock(ctx context.Context, order *Order) error
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByOrderNumber finds an order by its customer-facing number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	// FindByUserID lists a customer's orders, newest first
	FindByUserID(ctx context.Context, userID string, filter shared.Filter) ([]Order, error)
	// FindAll lists orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// CountByStatus counts orders in the given status
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
}
