package persistence

import (
	"context"

	appordering "github.com/jasmey/backend/internal/application/ordering"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormOrderingTransactionScope implements the lifecycle TransactionScope
// using GORM transactions. A cancellation's order update and per-line stock
// credits commit or roll back as one unit.
type GormOrderingTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderingTransactionScope creates a new GormOrderingTransactionScope
func NewGormOrderingTransactionScope(db *gorm.DB) *GormOrderingTransactionScope {
	return &GormOrderingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormOrderingTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderingRepositories{tx: tx})
	})
}

// gormOrderingRepositories provides transaction-scoped lifecycle repositories
type gormOrderingRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormOrderingRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// StockRepo returns the stock ledger repository scoped to the current transaction
func (r *gormOrderingRepositories) StockRepo() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormOrderingRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appordering.TransactionScope = (*GormOrderingTransactionScope)(nil)
var _ appordering.TransactionalRepositories = (*gormOrderingRepositories)(nil)
