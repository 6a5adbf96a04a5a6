package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/numbering"
	"gorm.io/gorm"
)

// GormSequenceRepository implements SequenceRepository using GORM
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next atomically increments and returns the counter for (name, year). The
// upsert and increment happen in one statement, so concurrent callers are
// serialized by the database row lock and never see the same value. The row
// is created on first use.
func (r *GormSequenceRepository) Next(ctx context.Context, name string, year int) (int64, error) {
	var counter int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequences (id, name, year, counter, created_at, updated_at)
		VALUES (?, ?, ?, 1, NOW(), NOW())
		ON CONFLICT (name, year)
		DO UPDATE SET counter = sequences.counter + 1, updated_at = NOW()
		RETURNING counter`,
		uuid.New(), name, year,
	).Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ numbering.SequenceRepository = (*GormSequenceRepository)(nil)
