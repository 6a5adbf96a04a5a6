package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jasmey/backend/internal/domain/numbering"
)

func newMockSequenceRepository(t *testing.T) (*GormSequenceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSequenceRepository(gormDB), mock, mockDB
}

func TestGormSequenceRepository_Next(t *testing.T) {
	t.Run("returns the incremented counter", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO sequences`).
			WillReturnRows(sqlmock.NewRows([]string{"counter"}).AddRow(42))

		value, err := repo.Next(context.Background(), numbering.SequenceOrder, 2026)

		require.NoError(t, err)
		assert.Equal(t, int64(42), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one for a fresh name and year", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO sequences`).
			WillReturnRows(sqlmock.NewRows([]string{"counter"}).AddRow(1))

		value, err := repo.Next(context.Background(), numbering.SequenceInvoice, 2026)

		require.NoError(t, err)
		assert.Equal(t, int64(1), value)
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO sequences`).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Next(context.Background(), numbering.SequenceOrder, 2026)

		assert.Error(t, err)
	})
}
