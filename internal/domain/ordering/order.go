package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/pricing"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/jasmey/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderItem is a frozen line snapshot copied from the priced draft at
// placement time. It is decoupled from live product data: later price or name
// edits to the product never change a historical order.
type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"name"`
	Size        string          `json:"size"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// Amount returns unit price * quantity
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// OrderItems is the JSON-persisted item list
type OrderItems []OrderItem

// StatusChange is one entry in the append-only status history
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// StatusHistory is the ordered, append-only log of status changes
type StatusHistory []StatusChange

// Last returns the most recent entry, or nil when the history is empty
func (h StatusHistory) Last() *StatusChange {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}

// Order is the immutable snapshot produced at checkout. After creation the
// only mutations are lifecycle transitions (status plus one appended history
// entry, atomically) and payment settlement. Orders are never deleted, only
// cancelled.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string                   `gorm:"size:50;not null;uniqueIndex"`
	InvoiceNumber     string                   `gorm:"size:50;not null;uniqueIndex"`
	UserID            string                   `gorm:"size:100;not null;index"`
	Items             OrderItems               `gorm:"serializer:json;not null"`
	Subtotal          decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	Tax               decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	DeliveryCharges   decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	Discount          decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	Total             decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	Customer          valueobject.CustomerInfo `gorm:"serializer:json;not null"`
	PaymentMethod     PaymentMethod            `gorm:"size:20;not null"`
	PaymentStatus     PaymentStatus            `gorm:"size:20;not null"`
	Status            OrderStatus              `gorm:"size:20;not null;index"`
	StatusHistory     StatusHistory            `gorm:"serializer:json;not null"`
	EstimatedDelivery time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order from a priced draft. The draft's items and totals
// are copied verbatim; the order starts in pending with a single history
// entry.
func NewOrder(
	userID string,
	orderNumber, invoiceNumber string,
	draft *pricing.PricedOrderDraft,
	customer valueobject.CustomerInfo,
	paymentMethod PaymentMethod,
	estimatedDelivery time.Time,
) (*Order, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if orderNumber == "" || invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order and invoice numbers are required")
	}
	if draft == nil || len(draft.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot place an order without items")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	items := make(OrderItems, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	now := time.Now()
	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		InvoiceNumber:     invoiceNumber,
		UserID:            userID,
		Items:             items,
		Subtotal:          draft.Subtotal,
		Tax:               draft.Tax,
		DeliveryCharges:   draft.DeliveryCharges,
		Discount:          draft.Discount,
		Total:             draft.Total,
		Customer:          customer,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     PaymentStatusPending,
		Status:            OrderStatusPending,
		StatusHistory:     StatusHistory{{Status: OrderStatusPending, Timestamp: now}},
		EstimatedDelivery: estimatedDelivery,
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))
	return order, nil
}

// TransitionTo moves the order to the target status. Status and history are
// always updated together; the order is left unchanged on a rejected
// transition.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}

	from := o.Status
	o.Status = target
	o.StatusHistory = append(o.StatusHistory, StatusChange{Status: target, Timestamp: time.Now()})
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))
	if target == OrderStatusCancelled {
		o.AddDomainEvent(NewOrderCancelledEvent(o, from))
	}
	return nil
}

// Cancel transitions the order into cancelled. Cancelling an already-cancelled
// order is an idempotent no-op: the second return value reports whether this
// call performed the cancellation, so callers release reserved stock exactly
// once.
func (o *Order) Cancel() (bool, error) {
	if o.Status == OrderStatusCancelled {
		return false, nil
	}
	if err := o.TransitionTo(OrderStatusCancelled); err != nil {
		return false, err
	}
	return true, nil
}

// IsCancelled reports whether the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// SetPaymentStatus updates the payment settlement state
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status")
	}
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// ItemQuantity returns the total quantity across all items
func (o *Order) ItemQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// CheckIntegrity verifies the status/history invariant on read: the history is
// non-empty and its last entry matches the current status. A mismatch means
// status and history were updated independently, which is fatal.
func (o *Order) CheckIntegrity() error {
	last := o.StatusHistory.Last()
	if last == nil {
		return shared.NewIntegrityError("status_history_non_empty",
			"order %s has no status history", o.OrderNumber)
	}
	if last.Status != o.Status {
		return shared.NewIntegrityError("status_matches_history",
			"order %s status %q does not match last history entry %q",
			o.OrderNumber, o.Status, last.Status)
	}
	return nil
}
