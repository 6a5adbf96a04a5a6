package persistence

import (
	"context"

	appcheckout "github.com/jasmey/backend/internal/application/checkout"
	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/numbering"
	"github.com/jasmey/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormCheckoutTransactionScope implements the checkout TransactionScope using
// GORM transactions. Every repository handed to the callback shares one
// transaction, so a failed reservation rolls back the order row and every
// earlier stock decrement together.
type GormCheckoutTransactionScope struct {
	db *gorm.DB
}

// NewGormCheckoutTransactionScope creates a new GormCheckoutTransactionScope
func NewGormCheckoutTransactionScope(db *gorm.DB) *GormCheckoutTransactionScope {
	return &GormCheckoutTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCheckoutTransactionScope) Execute(ctx context.Context, fn func(repos appcheckout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

// gormCheckoutRepositories provides transaction-scoped checkout repositories
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormCheckoutRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// StockRepo returns the stock ledger repository scoped to the current transaction
func (r *gormCheckoutRepositories) StockRepo() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormCheckoutRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormCheckoutRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// SequenceRepo returns the numbering sequence repository scoped to the current transaction
func (r *gormCheckoutRepositories) SequenceRepo() numbering.SequenceRepository {
	return NewGormSequenceRepository(r.tx)
}

var _ appcheckout.TransactionScope = (*GormCheckoutTransactionScope)(nil)
var _ appcheckout.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
