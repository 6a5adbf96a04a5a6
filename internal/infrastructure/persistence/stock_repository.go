package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// Save creates or updates a ledger entry
func (r *GormStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"stock":               item.Stock,
			"low_stock_threshold": item.LowStockThreshold,
			"version":             item.Version,
			"updated_at":          item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByProductID finds the ledger entry for a product
func (r *GormStockItemRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).First(&item, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByProductIDs finds ledger entries for a set of products
func (r *GormStockItemRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.StockItem, error) {
	if len(productIDs) == 0 {
		return []inventory.StockItem{}, nil
	}

	var items []inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindLowStock lists entries at or below their low stock threshold
func (r *GormStockItemRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	query := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("stock <= low_stock_threshold")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("stock ASC")
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ReserveStock atomically decrements stock for an order line. The availability
// guard lives in the same UPDATE as the decrement, so two concurrent
// reservations of the last unit resolve to exactly one winner.
func (r *GormStockItemRepository) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int64, orderID uuid.UUID) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":   gorm.Expr("stock - ?", quantity),
			"version": gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the product has no ledger entry or the stock guard failed;
		// distinguish so callers can report the right error.
		if _, err := r.FindByProductID(ctx, productID); err != nil {
			return err
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// ReleaseStock atomically increments stock after a cancellation
func (r *GormStockItemRepository) ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int64, orderID uuid.UUID) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"stock":   gorm.Expr("stock + ?", quantity),
			"version": gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the ledger entry for a product
func (r *GormStockItemRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockItem{}, "product_id = ?", productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ inventory.StockItemRepository = (*GormStockItemRepository)(nil)
