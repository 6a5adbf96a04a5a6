package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/inventory"
)

// StockResponse is the ledger view for a product
type StockResponse struct {
	ProductID         uuid.UUID `json:"product_id"`
	Stock             int64     `json:"stock"`
	LowStockThreshold int64     `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	IsOutOfStock      bool      `json:"is_out_of_stock"`
}

// AdjustStockRequest is the admin restock override
type AdjustStockRequest struct {
	Stock             int64 `json:"stock" binding:"min=0"`
	LowStockThreshold int64 `json:"low_stock_threshold" binding:"min=0"`
}

// MovementResponse is one audit entry of the stock ledger
type MovementResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Delta     int64     `json:"delta"`
	Reason    string    `json:"reason"`
	OrderID   uuid.UUID `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToStockResponse maps a ledger entry to its response representation
func ToStockResponse(item *inventory.StockItem) StockResponse {
	return StockResponse{
		ProductID:         item.ProductID,
		Stock:             item.Stock,
		LowStockThreshold: item.LowStockThreshold,
		IsLowStock:        item.IsLowStock(),
		IsOutOfStock:      item.IsOutOfStock(),
	}
}

// ToMovementResponses maps movements to their response representation
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Delta:     m.Delta,
			Reason:    string(m.Reason),
			OrderID:   m.OrderID,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
