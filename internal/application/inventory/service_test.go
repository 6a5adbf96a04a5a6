package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/shared"
)

type memStockRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*inventory.StockItem
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{items: make(map[uuid.UUID]*inventory.StockItem)}
}

func (r *memStockRepo) Save(_ context.Context, item *inventory.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ProductID] = item
	return nil
}

func (r *memStockRepo) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	return r.Save(ctx, item)
}

func (r *memStockRepo) FindByProductID(_ context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *memStockRepo) FindByProductIDs(_ context.Context, productIDs []uuid.UUID) ([]inventory.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockItem, 0, len(productIDs))
	for _, id := range productIDs {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memStockRepo) FindLowStock(_ context.Context, _ shared.Filter) ([]inventory.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockItem, 0)
	for _, item := range r.items {
		if item.IsLowStock() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memStockRepo) ReserveStock(_ context.Context, productID uuid.UUID, quantity int64, _ uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[productID]
	if !ok {
		return shared.ErrNotFound
	}
	if item.Stock < quantity {
		return shared.ErrInsufficientStock
	}
	item.Stock -= quantity
	return nil
}

func (r *memStockRepo) ReleaseStock(_ context.Context, productID uuid.UUID, quantity int64, _ uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[productID]
	if !ok {
		return shared.ErrNotFound
	}
	item.Stock += quantity
	return nil
}

func (r *memStockRepo) Delete(_ context.Context, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, productID)
	return nil
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.StockMovement
}

func (r *memMovementRepo) Append(_ context.Context, movement *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *memMovementRepo) FindByProductID(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func seedStock(t *testing.T, repo *memStockRepo, stock, threshold int64) uuid.UUID {
	t.Helper()
	productID := uuid.New()
	item, err := inventory.NewStockItem(productID, stock, threshold)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return productID
}

func TestGetStock(t *testing.T) {
	stockRepo := newMemStockRepo()
	service := NewService(stockRepo, &memMovementRepo{})
	productID := seedStock(t, stockRepo, 7, 10)

	resp, err := service.GetStock(context.Background(), productID)
	require.NoError(t, err)

	assert.Equal(t, productID, resp.ProductID)
	assert.Equal(t, int64(7), resp.Stock)
	assert.True(t, resp.IsLowStock)
	assert.False(t, resp.IsOutOfStock)
}

func TestGetStockNotFound(t *testing.T) {
	service := NewService(newMemStockRepo(), &memMovementRepo{})

	_, err := service.GetStock(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetStockBatchSkipsMissingProducts(t *testing.T) {
	stockRepo := newMemStockRepo()
	service := NewService(stockRepo, &memMovementRepo{})
	productID := seedStock(t, stockRepo, 20, 5)

	resp, err := service.GetStockBatch(context.Background(), []uuid.UUID{productID, uuid.New()})
	require.NoError(t, err)

	require.Len(t, resp, 1)
	assert.Equal(t, productID, resp[0].ProductID)
}

func TestAdjustStockRecordsMovementAndPublishes(t *testing.T) {
	stockRepo := newMemStockRepo()
	movementRepo := &memMovementRepo{}
	publisher := &capturingPublisher{}
	service := NewService(stockRepo, movementRepo)
	service.SetEventPublisher(publisher)
	productID := seedStock(t, stockRepo, 10, 5)

	resp, err := service.AdjustStock(context.Background(), productID, AdjustStockRequest{
		Stock:             50,
		LowStockThreshold: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), resp.Stock)
	assert.Equal(t, int64(8), resp.LowStockThreshold)
	assert.False(t, resp.IsLowStock)

	movements, err := movementRepo.FindByProductID(context.Background(), productID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, int64(40), movements[0].Delta)
	assert.Equal(t, inventory.MovementReasonRestock, movements[0].Reason)

	assert.NotEmpty(t, publisher.events)
}

func TestAdjustStockRejectsNegativeStock(t *testing.T) {
	stockRepo := newMemStockRepo()
	service := NewService(stockRepo, &memMovementRepo{})
	productID := seedStock(t, stockRepo, 10, 5)

	_, err := service.AdjustStock(context.Background(), productID, AdjustStockRequest{
		Stock:             -1,
		LowStockThreshold: 5,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
}

func TestListLowStock(t *testing.T) {
	stockRepo := newMemStockRepo()
	service := NewService(stockRepo, &memMovementRepo{})
	lowID := seedStock(t, stockRepo, 3, 10)
	seedStock(t, stockRepo, 100, 10)

	resp, err := service.ListLowStock(context.Background(), shared.Filter{})
	require.NoError(t, err)

	require.Len(t, resp, 1)
	assert.Equal(t, lowID, resp[0].ProductID)
}

func TestMovementsAuditTrail(t *testing.T) {
	stockRepo := newMemStockRepo()
	movementRepo := &memMovementRepo{}
	service := NewService(stockRepo, movementRepo)
	productID := seedStock(t, stockRepo, 10, 5)

	_, err := service.AdjustStock(context.Background(), productID, AdjustStockRequest{Stock: 30, LowStockThreshold: 5})
	require.NoError(t, err)
	_, err = service.AdjustStock(context.Background(), productID, AdjustStockRequest{Stock: 25, LowStockThreshold: 5})
	require.NoError(t, err)

	movements, err := service.Movements(context.Background(), productID, shared.Filter{})
	require.NoError(t, err)

	require.Len(t, movements, 2)
	assert.Equal(t, int64(20), movements[0].Delta)
	assert.Equal(t, int64(-5), movements[1].Delta)
}
