package numbering

import "context"

// SequenceRepository defines persistence for named counters.
//
// Next must be atomic under concurrent callers: implementations increment the
// stored counter and return the new value in a single statement (or a
// serialized transaction), so two concurrent calls never observe the same
// value. A missing (name, year) row is created on first use.
type SequenceRepository interface {
	// Next atomically increments and returns the counter for the name in the
	// given year
	Next(ctx context.Context, name string, year int) (int64, error)
}

// Sequence names used by the numbering service
const (
	SequenceOrder   = "order"
	SequenceInvoice = "invoice"
)

// Service hands out unique document numbers. Uniqueness comes from the
// repository's atomic increment; the service only formats.
type Service struct {
	repo          SequenceRepository
	orderPrefix   string
	invoicePrefix string
}

// NewService creates a numbering service with the configured prefixes
func NewService(repo SequenceRepository, orderPrefix, invoicePrefix string) *Service {
	return &Service{
		repo:          repo,
		orderPrefix:   orderPrefix,
		invoicePrefix: invoicePrefix,
	}
}

// NextOrderNumber returns the next unique order number
func (s *Service) NextOrderNumber(ctx context.Context) (string, error) {
	year := CurrentYear()
	value, err := s.repo.Next(ctx, SequenceOrder, year)
	if err != nil {
		return "", err
	}
	return FormatNumber(s.orderPrefix, year, value), nil
}

// NextInvoiceNumber returns the next unique invoice number
func (s *Service) NextInvoiceNumber(ctx context.Context) (string, error) {
	year := CurrentYear()
	value, err := s.repo.Next(ctx, SequenceInvoice, year)
	if err != nil {
		return "", err
	}
	return FormatNumber(s.invoicePrefix, year, value), nil
}
