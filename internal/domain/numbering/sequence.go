package numbering

import (
	"fmt"
	"time"

	"github.com/jasmey/backend/internal/domain/shared"
)

// Sequence is a named, yearly counter backing order and invoice numbers. One
// row exists per (name, year); the counter only ever increases, so numbers
// assigned from it are unique for all time.
type Sequence struct {
	shared.BaseEntity
	Name    string `gorm:"size:50;not null;uniqueIndex:idx_sequences_name_year"`
	Year    int    `gorm:"not null;uniqueIndex:idx_sequences_name_year"`
	Counter int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Sequence) TableName() string {
	return "sequences"
}

// NewSequence creates a counter for the given name and year
func NewSequence(name string, year int) (*Sequence, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SEQUENCE", "Sequence name cannot be empty")
	}
	return &Sequence{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Year:       year,
		Counter:    0,
	}, nil
}

// FormatNumber renders a sequence value as a document number, e.g.
// "ORD-2025-000042".
func FormatNumber(prefix string, year int, value int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, value)
}

// CurrentYear returns the year used to partition sequences
func CurrentYear() int {
	return time.Now().Year()
}
