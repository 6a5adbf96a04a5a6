package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/jasmey/backend/internal/domain/shared/valueobject"
)

// ProductCache caches product list reads. Implemented by the infrastructure
// layer; a nil cache disables caching entirely.
type ProductCache interface {
	// GetList returns a cached listing for the key, or false when absent
	GetList(ctx context.Context, key string) (*ProductListResponse, bool)
	// SetList stores a listing under the key
	SetList(ctx context.Context, key string, response *ProductListResponse)
	// Invalidate drops all cached listings after a catalog write
	Invalidate(ctx context.Context)
}

// ProductService handles catalog operations. Creating a product also creates
// its inventory ledger entry; deleting one removes the entry. Stock levels are
// otherwise out of scope here.
type ProductService struct {
	productRepo catalog.ProductRepository
	stockRepo   inventory.StockItemRepository
	cache       ProductCache
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, stockRepo inventory.StockItemRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

// SetCache sets the optional product list cache
func (s *ProductService) SetCache(cache ProductCache) {
	s.cache = cache
}

// Create adds a product to the catalog together with its ledger entry
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Category, valueobject.NewMoneyINR(req.Price), req.Sizes)
	if err != nil {
		return nil, err
	}
	if err := product.SetPricing(valueobject.NewMoneyINR(req.Price), req.PriceBySize, req.DiscountPercent); err != nil {
		return nil, err
	}
	if err := product.UpdateDetails(req.Name, req.Category, req.Description, req.Sizes, req.Images); err != nil {
		return nil, err
	}
	product.SetFeatured(req.Featured)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	stockItem, err := inventory.NewStockItem(product.ID, req.InitialStock, req.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	if err := s.stockRepo.Save(ctx, stockItem); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ListFilter) (*ProductListResponse, error) {
	cacheKey := listCacheKey(filter)
	if s.cache != nil {
		if cached, ok := s.cache.GetList(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	domainFilter := toDomainFilter(filter)
	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	response := ToProductListResponse(products, total)
	if s.cache != nil {
		s.cache.SetList(ctx, cacheKey, &response)
	}
	return &response, nil
}

// Update modifies a product's details and pricing
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateDetails(req.Name, req.Category, req.Description, req.Sizes, req.Images); err != nil {
		return nil, err
	}
	if err := product.SetPricing(valueobject.NewMoneyINR(req.Price), req.PriceBySize, req.DiscountPercent); err != nil {
		return nil, err
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	response := ToProductResponse(product)
	return &response, nil
}

// SetActive toggles storefront visibility
func (s *ProductService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product and its ledger entry. Historical orders keep their
// frozen snapshots of it.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.stockRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func listCacheKey(filter ListFilter) string {
	key := "products"
	if filter.Category != "" {
		key += ":cat=" + filter.Category
	}
	if filter.Featured != nil && *filter.Featured {
		key += ":featured"
	}
	if filter.Search != "" {
		key += ":q=" + filter.Search
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	key += fmt.Sprintf(":p=%d:n=%d", page, size)
	return key
}

func toDomainFilter(filter ListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Featured != nil {
		domainFilter.Filters["featured"] = *filter.Featured
	}
	return domainFilter
}
