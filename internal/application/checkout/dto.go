package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/ordering"
	"github.com/jasmey/backend/internal/domain/pricing"
	"github.com/jasmey/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CartLineInput is one cart line in a price or checkout request
type CartLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// PriceCartRequest asks for totals over the given cart lines
type PriceCartRequest struct {
	Lines []CartLineInput `json:"lines" binding:"required,min=1,dive"`
}

// PricedItemResponse is one priced line in the quote
type PricedItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"name"`
	Size        string          `json:"size"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// PriceCartResponse is the quote returned for a cart
type PriceCartResponse struct {
	Items           []PricedItemResponse `json:"items"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Tax             decimal.Decimal      `json:"tax"`
	DeliveryCharges decimal.Decimal      `json:"delivery_charges"`
	Discount        decimal.Decimal      `json:"discount"`
	Total           decimal.Decimal      `json:"total"`
	PricedAt        time.Time            `json:"priced_at"`
}

// AddressInput is the delivery address in a checkout request
type AddressInput struct {
	Line1    string `json:"line1" binding:"required"`
	Line2    string `json:"line2"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state"`
	Pincode  string `json:"pincode" binding:"required"`
	Landmark string `json:"landmark"`
	Type     string `json:"type"`
}

// CustomerInput is the customer snapshot in a checkout request
type CustomerInput struct {
	Name    string       `json:"name" binding:"required,min=1,max=200"`
	Email   string       `json:"email" binding:"omitempty,email"`
	Phone   string       `json:"phone"`
	Address AddressInput `json:"address" binding:"required"`
}

// PlaceOrderRequest creates an order from cart lines
type PlaceOrderRequest struct {
	Lines         []CartLineInput `json:"lines" binding:"required,min=1,dive"`
	Customer      CustomerInput   `json:"customer" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

// OrderResponse is the order representation returned to clients
type OrderResponse struct {
	ID                uuid.UUID                `json:"id"`
	OrderNumber       string                   `json:"order_number"`
	InvoiceNumber     string                   `json:"invoice_number"`
	UserID            string                   `json:"user_id"`
	Items             []OrderItemResponse      `json:"items"`
	Subtotal          decimal.Decimal          `json:"subtotal"`
	Tax               decimal.Decimal          `json:"tax"`
	DeliveryCharges   decimal.Decimal          `json:"delivery_charges"`
	Discount          decimal.Decimal          `json:"discount"`
	Total             decimal.Decimal          `json:"total"`
	Customer          valueobject.CustomerInfo `json:"customer"`
	PaymentMethod     string                   `json:"payment_method"`
	PaymentStatus     string                   `json:"payment_status"`
	Status            string                   `json:"status"`
	StatusHistory     []StatusChangeResponse   `json:"status_history"`
	EstimatedDelivery time.Time                `json:"estimated_delivery"`
	CreatedAt         time.Time                `json:"created_at"`
}

// OrderItemResponse is one frozen line of an order
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"name"`
	Size        string          `json:"size"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// StatusChangeResponse is one entry of an order's status history
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ToPriceCartResponse maps a priced draft to the quote response
func ToPriceCartResponse(draft *pricing.PricedOrderDraft) PriceCartResponse {
	items := make([]PricedItemResponse, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, PricedItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount(),
		})
	}
	return PriceCartResponse{
		Items:           items,
		Subtotal:        draft.Subtotal,
		Tax:             draft.Tax,
		DeliveryCharges: draft.DeliveryCharges,
		Discount:        draft.Discount,
		Total:           draft.Total,
		PricedAt:        draft.PricedAt,
	}
}

// ToOrderResponse maps an order aggregate to its response representation
func ToOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	history := make([]StatusChangeResponse, 0, len(order.StatusHistory))
	for _, h := range order.StatusHistory {
		history = append(history, StatusChangeResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
		})
	}
	return OrderResponse{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		InvoiceNumber:     order.InvoiceNumber,
		UserID:            order.UserID,
		Items:             items,
		Subtotal:          order.Subtotal,
		Tax:               order.Tax,
		DeliveryCharges:   order.DeliveryCharges,
		Discount:          order.Discount,
		Total:             order.Total,
		Customer:          order.Customer,
		PaymentMethod:     string(order.PaymentMethod),
		PaymentStatus:     string(order.PaymentStatus),
		Status:            string(order.Status),
		StatusHistory:     history,
		EstimatedDelivery: order.EstimatedDelivery,
		CreatedAt:         order.CreatedAt,
	}
}
