package notification

import "context"

// Message is a customer or admin notification
type Message struct {
	Channel   string `json:"channel"` // "email", "sms", "whatsapp"
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Notifier sends notifications over a concrete channel. Implemented by the
// infrastructure layer; delivery is best-effort and never blocks checkout.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
