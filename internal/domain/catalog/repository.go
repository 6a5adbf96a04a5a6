package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// Save persists a new product
	Save(ctx context.Context, product *Product) error
	// SaveWithLock persists an existing product with optimistic locking
	SaveWithLock(ctx context.Context, product *Product) error
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs finds products by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	// FindAll lists products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Delete removes a product from the catalog
	Delete(ctx context.Context, id uuid.UUID) error
}
