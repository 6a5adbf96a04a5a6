package checkout

import (
	"context"

	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/numbering"
	"github.com/jasmey/backend/internal/domain/ordering"
)

// TransactionScope provides transactional access to the repositories an order
// placement or lifecycle transition touches. All repository operations inside
// Execute share one database transaction: a failed reservation rolls back the
// order row, earlier stock decrements and their movement records together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all checkout repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the transaction
	ProductRepo() catalog.ProductRepository
	// StockRepo returns the stock ledger repository scoped to the transaction
	StockRepo() inventory.StockItemRepository
	// MovementRepo returns the stock movement repository scoped to the transaction
	MovementRepo() inventory.StockMovementRepository
	// OrderRepo returns the order repository scoped to the transaction
	OrderRepo() ordering.OrderRepository
	// SequenceRepo returns the numbering sequence repository scoped to the transaction
	SequenceRepo() numbering.SequenceRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with in-memory repositories.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	stockRepo    inventory.StockItemRepository
	movementRepo inventory.StockMovementRepository
	orderRepo    ordering.OrderRepository
	sequenceRepo numbering.SequenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
	orderRepo ordering.OrderRepository,
	sequenceRepo numbering.SequenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		orderRepo:    orderRepo,
		sequenceRepo: sequenceRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// StockRepo returns the stock ledger repository
func (s *NoOpTransactionScope) StockRepo() inventory.StockItemRepository { return s.stockRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() ordering.OrderRepository { return s.orderRepo }

// SequenceRepo returns the numbering sequence repository
func (s *NoOpTransactionScope) SequenceRepo() numbering.SequenceRepository { return s.sequenceRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
