package notification

import (
	"context"
	"fmt"

	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockAlertHandler notifies the store admin when a reservation drops a
// product's stock to or below its threshold.
type StockAlertHandler struct {
	logger     *zap.Logger
	notifier   Notifier
	adminEmail string
}

// NewStockAlertHandler creates a handler for low stock events
func NewStockAlertHandler(logger *zap.Logger, notifier Notifier, adminEmail string) *StockAlertHandler {
	return &StockAlertHandler{
		logger:     logger,
		notifier:   notifier,
		adminEmail: adminEmail,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StockAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a low stock event
func (h *StockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	alert, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		return nil
	}

	msg := Message{
		Channel:   "email",
		Recipient: h.adminEmail,
		Subject:   "Low stock alert",
		Body: fmt.Sprintf("Product %s is down to %d units (threshold %d). Time to restock.",
			alert.ProductID, alert.Stock, alert.Threshold),
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Warn("failed to send low stock alert",
			zap.String("product_id", alert.ProductID.String()),
			zap.Int64("stock", alert.Stock),
			zap.Error(err))
	}
	return nil
}

var _ shared.EventHandler = (*StockAlertHandler)(nil)
