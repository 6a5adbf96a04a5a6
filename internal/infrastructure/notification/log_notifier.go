// Package notification provides delivery channels for customer and admin
// notifications.
package notification

import (
	"context"

	"go.uber.org/zap"

	appnotification "github.com/jasmey/backend/internal/application/notification"
)

// LogNotifier writes notifications to the application log instead of sending
// them. It stands in for a real email or SMS gateway in development, and
// doubles as an audit trail in production when no gateway is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs every message
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the message at info level
func (n *LogNotifier) Send(_ context.Context, msg appnotification.Message) error {
	n.logger.Info("notification",
		zap.String("channel", msg.Channel),
		zap.String("recipient", msg.Recipient),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// Ensure LogNotifier implements Notifier
var _ appnotification.Notifier = (*LogNotifier)(nil)
