package notification

import (
	"context"
	"fmt"

	"github.com/jasmey/backend/internal/domain/ordering"
	"github.com/jasmey/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OrderEventsHandler turns order lifecycle events into customer notifications.
// It runs on the in-process event bus after the order transaction commits; a
// failed notification is logged, never propagated back into the order flow.
type OrderEventsHandler struct {
	logger   *zap.Logger
	notifier Notifier
	printer  *message.Printer
}

// NewOrderEventsHandler creates a handler for order lifecycle events
func NewOrderEventsHandler(logger *zap.Logger, notifier Notifier) *OrderEventsHandler {
	return &OrderEventsHandler{
		logger:   logger,
		notifier: notifier,
		printer:  message.NewPrinter(language.English),
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderEventsHandler) EventTypes() []string {
	return []string{
		ordering.EventTypeOrderPlaced,
		ordering.EventTypeOrderStatusChanged,
	}
}

// Handle processes an order event
func (h *OrderEventsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ordering.OrderPlacedEvent:
		return h.handlePlaced(ctx, e)
	case *ordering.OrderStatusChangedEvent:
		return h.handleStatusChanged(ctx, e)
	default:
		return nil
	}
}

func (h *OrderEventsHandler) handlePlaced(ctx context.Context, event *ordering.OrderPlacedEvent) error {
	total, _ := event.Total.Float64()
	body := h.printer.Sprintf("Hi %s, your order %s for %v is confirmed. We'll keep you posted!",
		event.CustomerName, event.OrderNumber, currency.INR.Amount(total))

	msg := Message{
		Channel:   "sms",
		Recipient: event.CustomerPhone,
		Subject:   "Order " + event.OrderNumber + " placed",
		Body:      body,
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Warn("failed to send order placed notification",
			zap.String("order_number", event.OrderNumber),
			zap.Error(err))
	}
	return nil
}

func (h *OrderEventsHandler) handleStatusChanged(ctx context.Context, event *ordering.OrderStatusChangedEvent) error {
	msg := Message{
		Channel:   "sms",
		Recipient: event.UserID,
		Subject:   "Order " + event.OrderNumber + " update",
		Body:      fmt.Sprintf("Your order %s is now %s.", event.OrderNumber, event.ToStatus),
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Warn("failed to send status change notification",
			zap.String("order_number", event.OrderNumber),
			zap.String("status", string(event.ToStatus)),
			zap.Error(err))
	}
	return nil
}

var _ shared.EventHandler = (*OrderEventsHandler)(nil)
