package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest creates a catalog product with its ledger entry
type CreateProductRequest struct {
	Name              string                     `json:"name" binding:"required,min=1,max=200"`
	Category          string                     `json:"category" binding:"max=100"`
	Description       string                     `json:"description"`
	Price             decimal.Decimal            `json:"price" binding:"required"`
	PriceBySize       map[string]decimal.Decimal `json:"price_by_size"`
	DiscountPercent   decimal.Decimal            `json:"discount_percent"`
	Sizes             []string                   `json:"sizes"`
	Images            []string                   `json:"images"`
	Featured          bool                       `json:"featured"`
	InitialStock      int64                      `json:"initial_stock" binding:"min=0"`
	LowStockThreshold int64                      `json:"low_stock_threshold" binding:"min=0"`
}

// UpdateProductRequest updates descriptive and pricing fields
type UpdateProductRequest struct {
	Name            string                     `json:"name" binding:"required,min=1,max=200"`
	Category        string                     `json:"category" binding:"max=100"`
	Description     string                     `json:"description"`
	Price           decimal.Decimal            `json:"price" binding:"required"`
	PriceBySize     map[string]decimal.Decimal `json:"price_by_size"`
	DiscountPercent decimal.Decimal            `json:"discount_percent"`
	Sizes           []string                   `json:"sizes"`
	Images          []string                   `json:"images"`
	Featured        *bool                      `json:"featured"`
}

// ListFilter holds listing parameters for product queries
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ProductResponse is the product representation returned to clients
type ProductResponse struct {
	ID              uuid.UUID                  `json:"id"`
	Name            string                     `json:"name"`
	Category        string                     `json:"category"`
	Description     string                     `json:"description"`
	Price           decimal.Decimal            `json:"price"`
	PriceBySize     map[string]decimal.Decimal `json:"price_by_size,omitempty"`
	DiscountPercent decimal.Decimal            `json:"discount_percent"`
	Sizes           []string                   `json:"sizes"`
	Images          []string                   `json:"images"`
	Status          string                     `json:"status"`
	Featured        bool                       `json:"featured"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// ProductListResponse is a paginated product listing
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}

// ToProductResponse maps a product aggregate to its response representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Category:        product.Category,
		Description:     product.Description,
		Price:           product.Price,
		PriceBySize:     product.PriceBySize,
		DiscountPercent: product.DiscountPercent,
		Sizes:           product.Sizes,
		Images:          product.Images,
		Status:          string(product.Status),
		Featured:        product.Featured,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

// ToProductListResponse maps products and a total count to the list response
func ToProductListResponse(products []catalog.Product, total int64) ProductListResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return ProductListResponse{Products: out, Total: total}
}
