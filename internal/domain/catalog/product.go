package catalog

import (
	"time"

	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/jasmey/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the catalog visibility of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// PriceBySize maps a size label to its price amount.
// Stored as a JSON column; empty map means the flat price applies to all sizes.
type PriceBySize map[string]decimal.Decimal

// Product is the catalog aggregate root. Sellable quantity lives in the
// inventory ledger, not here; catalog edits never touch stock.
type Product struct {
	shared.BaseAggregateRoot
	Name            string        `gorm:"size:200;not null"`
	Category        string        `gorm:"size:100;index"`
	Description     string        `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PriceBySize     PriceBySize   `gorm:"serializer:json"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Sizes           []string      `gorm:"serializer:json"`
	Images          []string      `gorm:"serializer:json"`
	Status          ProductStatus `gorm:"size:20;not null;default:active;index"`
	Featured        bool          `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name, category string, price valueobject.Money, sizes []string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Price:             price.Amount(),
		PriceBySize:       make(PriceBySize),
		DiscountPercent:   decimal.Zero,
		Sizes:             sizes,
		Status:            ProductStatusActive,
	}, nil
}

// UnitPrice resolves the effective unit price for a size: the size-specific
// price when one is defined, otherwise the flat price. No discount applied.
func (p *Product) UnitPrice(size string) valueobject.Money {
	if len(p.PriceBySize) > 0 {
		if amount, ok := p.PriceBySize[size]; ok {
			return valueobject.NewMoneyINR(amount)
		}
	}
	return valueobject.NewMoneyINR(p.Price)
}

// DiscountedUnitPrice resolves the unit price for a size with the product's
// percentage discount applied multiplicatively.
func (p *Product) DiscountedUnitPrice(size string) valueobject.Money {
	return p.UnitPrice(size).ApplyDiscount(p.DiscountPercent)
}

// HasSize reports whether the product offers the given size.
// Products with no declared sizes accept any size label.
func (p *Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// SetPricing updates flat price, size prices and discount percentage
func (p *Product) SetPricing(price valueobject.Money, priceBySize PriceBySize, discountPercent decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}
	for size, amount := range priceBySize {
		if amount.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Size price cannot be negative for size "+size)
		}
	}

	p.Price = price.Amount()
	if priceBySize != nil {
		p.PriceBySize = priceBySize
	}
	p.DiscountPercent = discountPercent
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdateDetails updates the descriptive fields of the product
func (p *Product) UpdateDetails(name, category, description string, sizes, images []string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	p.Name = name
	p.Category = category
	p.Description = description
	if sizes != nil {
		p.Sizes = sizes
	}
	if images != nil {
		p.Images = images
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
}

// Activate makes the product visible in the storefront
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from the storefront. Existing orders keep
// their frozen snapshot of it.
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
}

// IsActive returns true if the product is visible in the storefront
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// GetPriceMoney returns the flat price as Money
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Price)
}
