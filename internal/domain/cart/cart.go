package cart

import (
	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
)

// Line is one (product, size, quantity) entry in a cart.
// (ProductID, Size) is the identity of a line. Lines carry no price: price is
// always recomputed from current product data, so catalog price changes between
// add-to-cart and checkout are reflected live.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int64     `json:"quantity"`
}

// Cart holds a customer session's line items. It is session-owned and never
// persisted server-side; it exists to enforce line invariants before pricing.
type Cart struct {
	lines []Line
}

// New creates an empty cart
func New() *Cart {
	return &Cart{lines: make([]Line, 0)}
}

// FromLines builds a cart from raw lines, merging duplicate (product, size)
// keys and rejecting invalid quantities.
func FromLines(lines []Line) (*Cart, error) {
	c := New()
	for _, line := range lines {
		if err := c.AddLine(line.ProductID, line.Size, line.Quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddLine adds a line to the cart. Adding an existing (product, size) key
// increments its quantity rather than duplicating the line.
func (c *Cart) AddLine(productID uuid.UUID, size string, quantity int64) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for idx := range c.lines {
		if c.lines[idx].ProductID == productID && c.lines[idx].Size == size {
			c.lines[idx].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, Line{ProductID: productID, Size: size, Quantity: quantity})
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// below removes the line; callers never need to special-case zero.
func (c *Cart) UpdateQuantity(productID uuid.UUID, size string, quantity int64) error {
	if quantity <= 0 {
		c.RemoveLine(productID, size)
		return nil
	}

	for idx := range c.lines {
		if c.lines[idx].ProductID == productID && c.lines[idx].Size == size {
			c.lines[idx].Quantity = quantity
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Cart line not found")
}

// RemoveLine removes the line with the given (product, size) key, if present
func (c *Cart) RemoveLine(productID uuid.UUID, size string) {
	for idx := range c.lines {
		if c.lines[idx].ProductID == productID && c.lines[idx].Size == size {
			c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
			return
		}
	}
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// Lines returns a copy of the cart lines
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// LineCount returns the number of distinct lines
func (c *Cart) LineCount() int {
	return len(c.lines)
}

// ItemCount returns the total quantity across all lines
func (c *Cart) ItemCount() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// GetLine returns the line for the given key, or nil
func (c *Cart) GetLine(productID uuid.UUID, size string) *Line {
	for idx := range c.lines {
		if c.lines[idx].ProductID == productID && c.lines[idx].Size == size {
			return &c.lines[idx]
		}
	}
	return nil
}
