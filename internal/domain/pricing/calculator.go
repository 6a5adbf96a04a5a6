package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/cart"
	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/jasmey/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Config holds the store settings the calculator depends on
type Config struct {
	TaxRatePercent        decimal.Decimal // e.g. 5 for 5% GST
	DeliveryCharge        decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

// DraftItem is a line item with its price frozen at pricing time.
// The unit price already includes the product's percentage discount.
type DraftItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"name"`
	Size        string          `json:"size"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// Amount returns unit price * quantity at full precision
func (i DraftItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// PricedOrderDraft is the frozen output of the calculator. Once produced it
// never changes, even if catalog prices change later. Monetary fields are
// rounded to two places at the draft level, never per line, so cumulative
// rounding error stays under one currency unit.
type PricedOrderDraft struct {
	Items           []DraftItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	DeliveryCharges decimal.Decimal `json:"delivery_charges"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	PricedAt        time.Time       `json:"priced_at"`
}

// SubtotalMoney returns the subtotal as Money
func (d PricedOrderDraft) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(d.Subtotal)
}

// TotalMoney returns the grand total as Money
func (d PricedOrderDraft) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(d.Total)
}

// Calculator derives order totals from cart contents and store settings.
// It is a pure domain service: no side effects, no persistence.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator with the given store settings
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// ComputeTotals prices the cart lines against the given products.
//
// Availability is deliberately not checked here: a line for a product with
// zero stock still gets a price, so the cart can display totals while the
// customer decides. Stock is enforced at placement time.
//
// The optional orderDiscount is an order-level discount (zero unless a
// promotion mechanism supplies one); product percentage discounts are applied
// per unit price, never against the summed subtotal.
func (c *Calculator) ComputeTotals(lines []cart.Line, products map[uuid.UUID]*catalog.Product, orderDiscount decimal.Decimal) (*PricedOrderDraft, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot price an empty cart")
	}
	if orderDiscount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Order discount cannot be negative")
	}

	items := make([]DraftItem, 0, len(lines))
	subtotal := decimal.Zero

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Cart references an unknown product")
		}
		if !product.HasSize(line.Size) {
			return nil, shared.NewDomainError("INVALID_SIZE", "Product does not offer size "+line.Size)
		}

		unitPrice := product.DiscountedUnitPrice(line.Size).Amount()
		item := DraftItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.Amount())
	}

	tax := subtotal.Mul(c.cfg.TaxRatePercent).Div(decimal.NewFromInt(100))

	deliveryCharges := c.cfg.DeliveryCharge
	if subtotal.GreaterThanOrEqual(c.cfg.FreeDeliveryThreshold) {
		deliveryCharges = decimal.Zero
	}

	total := subtotal.Add(tax).Add(deliveryCharges).Sub(orderDiscount)
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Order discount cannot exceed the order total")
	}

	return &PricedOrderDraft{
		Items:           items,
		Subtotal:        subtotal.Round(2),
		Tax:             tax.Round(2),
		DeliveryCharges: deliveryCharges.Round(2),
		Discount:        orderDiscount.Round(2),
		Total:           total.Round(2),
		PricedAt:        time.Now(),
	}, nil
}
