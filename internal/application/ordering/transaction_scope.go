package ordering

import (
	"context"

	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/ordering"
)

// TransactionScope provides transactional access to the repositories a
// lifecycle transition touches. A cancellation updates the order row and
// credits stock for every line; those writes commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order and stock
// repositories within a transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the transaction
	OrderRepo() ordering.OrderRepository
	// StockRepo returns the stock ledger repository scoped to the transaction
	StockRepo() inventory.StockItemRepository
	// MovementRepo returns the stock movement repository scoped to the transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with in-memory repositories.
type NoOpTransactionScope struct {
	orderRepo    ordering.OrderRepository
	stockRepo    inventory.StockItemRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orderRepo ordering.OrderRepository,
	stockRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:    orderRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() ordering.OrderRepository { return s.orderRepo }

// StockRepo returns the stock ledger repository
func (s *NoOpTransactionScope) StockRepo() inventory.StockItemRepository { return s.stockRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
