package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/shared"
)

// Service exposes ledger reads and the admin restock override. Sale-driven
// stock changes never go through here; they happen inside checkout and
// lifecycle transactions.
type Service struct {
	stockRepo      inventory.StockItemRepository
	movementRepo   inventory.StockMovementRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new inventory service
func NewService(stockRepo inventory.StockItemRepository, movementRepo inventory.StockMovementRepository) *Service {
	return &Service{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetStock returns the ledger view for a product
func (s *Service) GetStock(ctx context.Context, productID uuid.UUID) (*StockResponse, error) {
	item, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := item.CheckIntegrity(); err != nil {
		return nil, err
	}
	response := ToStockResponse(item)
	return &response, nil
}

// GetStockBatch returns ledger views for a set of products
func (s *Service) GetStockBatch(ctx context.Context, productIDs []uuid.UUID) ([]StockResponse, error) {
	items, err := s.stockRepo.FindByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	out := make([]StockResponse, 0, len(items))
	for i := range items {
		if err := items[i].CheckIntegrity(); err != nil {
			return nil, err
		}
		out = append(out, ToStockResponse(&items[i]))
	}
	return out, nil
}

// AdjustStock applies the admin restock override: absolute stock level and
// threshold, bypassing the reserve/release accounting path.
func (s *Service) AdjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*StockResponse, error) {
	item, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	movement, err := item.Restock(req.Stock, req.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	if err := s.stockRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Append(ctx, movement); err != nil {
		return nil, err
	}

	s.publish(ctx, item.GetDomainEvents())
	item.ClearDomainEvents()

	response := ToStockResponse(item)
	return &response, nil
}

// ListLowStock lists products at or below their low stock threshold
func (s *Service) ListLowStock(ctx context.Context, filter shared.Filter) ([]StockResponse, error) {
	items, err := s.stockRepo.FindLowStock(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]StockResponse, 0, len(items))
	for i := range items {
		out = append(out, ToStockResponse(&items[i]))
	}
	return out, nil
}

// Movements lists the audit trail for a product, newest first
func (s *Service) Movements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByProductID(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		_ = s.eventPublisher.Publish(ctx, event)
	}
}
