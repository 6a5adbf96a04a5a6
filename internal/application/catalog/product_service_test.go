package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/jasmey/backend/internal/domain/inventory"
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
	return nil, nil
}

func (r *memStockRepo) ReserveStock(_ context.Context, _ uuid.UUID, _ int64, _ uuid.UUID) error {
	return nil
}

func (r *memStockRepo) ReleaseStock(_ context.Context, _ uuid.UUID, _ int64, _ uuid.UUID) error {
	return nil
}

func (r *memStockRepo) Delete(_ context.Context, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, productID)
	return nil
}

type memCache struct {
	mu          sync.Mutex
	entries     map[string]*ProductListResponse
	hits        int
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*ProductListResponse)}
}

func (c *memCache) GetList(_ context.Context, key string) (*ProductListResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return entry, ok
}

func (c *memCache) SetList(_ context.Context, key string, response *ProductListResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = response
}

func (c *memCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*ProductListResponse)
	c.invalidated++
}

func newTestProductService() (*ProductService, *memProductRepo, *memStockRepo) {
	productRepo := newMemProductRepo()
	stockRepo := newMemStockRepo()
	return NewProductService(productRepo, stockRepo), productRepo, stockRepo
}

func createRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:              "Chocolate Truffle Cake",
		Category:          "cakes",
		Description:       "Rich chocolate layers",
		Price:             decimal.NewFromInt(450),
		Sizes:             []string{"500g", "1kg"},
		InitialStock:      25,
		LowStockThreshold: 5,
	}
}

func TestCreateProductCreatesLedgerEntry(t *testing.T) {
	service, _, stockRepo := newTestProductService()

	resp, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "Chocolate Truffle Cake", resp.Name)
	assert.Equal(t, "active", resp.Status)

	item, err := stockRepo.FindByProductID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), item.Stock)
	assert.Equal(t, int64(5), item.LowStockThreshold)
}

func TestCreateProductRejectsEmptyName(t *testing.T) {
	service, _, _ := newTestProductService()

	req := createRequest()
	req.Name = ""
	_, err := service.Create(context.Background(), req)
	require.Error(t, err)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
}

func TestGetByIDNotFound(t *testing.T) {
	service, _, _ := newTestProductService()

	_, err := service.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	service, _, _ := newTestProductService()
	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	featured := true
	resp, err := service.Update(context.Background(), created.ID, UpdateProductRequest{
		Name:            "Dark Chocolate Truffle Cake",
		Category:        "cakes",
		Price:           decimal.NewFromInt(500),
		DiscountPercent: decimal.NewFromInt(10),
		Sizes:           []string{"500g", "1kg"},
		Featured:        &featured,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dark Chocolate Truffle Cake", resp.Name)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.Featured)
}

func TestSetActiveTogglesVisibility(t *testing.T) {
	service, _, _ := newTestProductService()
	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	resp, err := service.SetActive(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	resp, err = service.SetActive(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
}

func TestDeleteRemovesProductAndLedgerEntry(t *testing.T) {
	service, productRepo, stockRepo := newTestProductService()
	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	_, err = productRepo.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = stockRepo.FindByProductID(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListUsesCache(t *testing.T) {
	service, _, _ := newTestProductService()
	cache := newMemCache()
	service.SetCache(cache)

	_, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	first, err := service.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Total)
	assert.Equal(t, 0, cache.hits)

	second, err := service.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
}

func TestListCacheKeyDistinguishesPages(t *testing.T) {
	assert.NotEqual(t,
		listCacheKey(ListFilter{Page: 1, PageSize: 20}),
		listCacheKey(ListFilter{Page: 2, PageSize: 20}),
	)
	// Defaults collapse to the same key as their explicit values
	assert.Equal(t,
		listCacheKey(ListFilter{}),
		listCacheKey(ListFilter{Page: 1, PageSize: 20}),
	)
}

func TestWritesInvalidateCache(t *testing.T) {
	service, _, _ := newTestProductService()
	cache := newMemCache()
	service.SetCache(cache)

	created, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = service.List(context.Background(), ListFilter{})
	require.NoError(t, err)

	_, err = service.SetActive(context.Background(), created.ID, false)
	require.NoError(t, err)

	// The cached listing is gone after the write
	_, ok := cache.GetList(context.Background(), listCacheKey(ListFilter{}))
	assert.False(t, ok)
}
