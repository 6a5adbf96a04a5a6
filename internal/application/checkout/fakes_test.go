package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/numbering"
	"github.com/jasmey/backend/internal/domain/ordering"
	"github.com/jasmey/backend/internal/domain/shared"
)

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	return r.Save(ctx, product)
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *memProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, nil
}

func (r *memProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

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
	// compare-and-decrement under the repo lock
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

// snapshot and restore let the fake transaction scope roll back stock changes
func (r *memStockRepo) snapshot() map[uuid.UUID]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]int64, len(r.items))
	for id, item := range r.items {
		out[id] = item.Stock
	}
	return out
}

func (r *memStockRepo) restore(snap map[uuid.UUID]int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stock := range snap {
		if item, ok := r.items[id]; ok {
			item.Stock = stock
		}
	}
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.StockMovement
}

func newMemMovementRepo() *memMovementRepo {
	return &memMovementRepo{}
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

func (r *memMovementRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movements)
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*ordering.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*ordering.Order)}
}

func (r *memOrderRepo) Save(_ context.Context, order *ordering.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	return r.Save(ctx, order)
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *memOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindByUserID(_ context.Context, userID string, _ shared.Filter) ([]ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ordering.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ordering.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *memOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) CountByStatus(_ context.Context, status ordering.OrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, order := range r.orders {
		if order.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memOrderRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type memSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newMemSequenceRepo() *memSequenceRepo {
	return &memSequenceRepo{counters: make(map[string]int64)}
}

func (r *memSequenceRepo) Next(_ context.Context, name string, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%s/%d", name, year)
	r.counters[key]++
	return r.counters[key], nil
}

// rollbackScope mimics a database transaction over the in-memory fakes: stock
// levels are snapshotted before the function runs and restored when it fails.
type rollbackScope struct {
	productRepo  *memProductRepo
	stockRepo    *memStockRepo
	movementRepo *memMovementRepo
	orderRepo    *memOrderRepo
	sequenceRepo *memSequenceRepo
}

func (s *rollbackScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	snap := s.stockRepo.snapshot()
	if err := fn(s); err != nil {
		s.stockRepo.restore(snap)
		return err
	}
	return nil
}

func (s *rollbackScope) ProductRepo() catalog.ProductRepository            { return s.productRepo }
func (s *rollbackScope) StockRepo() inventory.StockItemRepository         { return s.stockRepo }
func (s *rollbackScope) MovementRepo() inventory.StockMovementRepository  { return s.movementRepo }
func (s *rollbackScope) OrderRepo() ordering.OrderRepository              { return s.orderRepo }
func (s *rollbackScope) SequenceRepo() numbering.SequenceRepository       { return s.sequenceRepo }

var _ TransactionScope = (*rollbackScope)(nil)
var _ TransactionalRepositories = (*rollbackScope)(nil)
