package ordering

import (
	"github.com/jasmey/backend/internal/application/checkout"
	"github.com/jasmey/backend/internal/domain/ordering"
)

// TransitionStatusRequest asks for a lifecycle transition
type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest updates the payment settlement state
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// ListFilter holds listing parameters for order queries
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// OrderListResponse is a paginated order listing
type OrderListResponse struct {
	Orders []checkout.OrderResponse `json:"orders"`
	Total  int64                    `json:"total"`
}

// ToOrderListResponse maps orders and a total count to the list response
func ToOrderListResponse(orders []ordering.Order, total int64) OrderListResponse {
	out := make([]checkout.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, checkout.ToOrderResponse(&orders[i]))
	}
	return OrderListResponse{Orders: out, Total: total}
}
