package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockItemRepository creates a GormStockItemRepository with a mocked SQL connection
func newMockStockItemRepository(t *testing.T) (*GormStockItemRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormStockItemRepository(gormDB), mock, mockDB
}

func stockItemRows(productID uuid.UUID, stock, threshold int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "product_id", "stock", "low_stock_threshold", "version", "created_at", "updated_at",
	}).AddRow(uuid.New(), productID, stock, threshold, 1, time.Now(), time.Now())
}

func TestGormStockItemRepository_FindByProductID(t *testing.T) {
	t.Run("finds existing ledger entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(stockItemRows(productID, 25, 10))

		item, err := repo.FindByProductID(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, int64(25), item.Stock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByProductID(context.Background(), productID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockItemRepository_ReserveStock(t *testing.T) {
	t.Run("decrements stock when enough is available", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectExec(`UPDATE "stock_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ReserveStock(context.Background(), productID, 3, uuid.New())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns insufficient stock when the guard rejects the decrement", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectExec(`UPDATE "stock_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		// The repository re-reads to tell "not enough" apart from "no entry"
		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(stockItemRows(productID, 2, 10))

		err := repo.ReserveStock(context.Background(), productID, 3, uuid.New())

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("returns not found when the product has no ledger entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectExec(`UPDATE "stock_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		err := repo.ReserveStock(context.Background(), productID, 3, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects non-positive quantity without touching the database", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		err := repo.ReserveStock(context.Background(), uuid.New(), 0, uuid.New())

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockItemRepository_ReleaseStock(t *testing.T) {
	t.Run("credits stock back", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "stock_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ReleaseStock(context.Background(), uuid.New(), 2, uuid.New())

		require.NoError(t, err)
	})

	t.Run("returns not found for a missing entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "stock_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ReleaseStock(context.Background(), uuid.New(), 2, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockItemRepository_SaveWithLock(t *testing.T) {
	t.Run("saves when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		item, err := inventory.NewStockItem(uuid.New(), 10, 3)
		require.NoError(t, err)
		item.IncrementVersion()

		mock.ExpectExec(`UPDATE "stock_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveWithLock(context.Background(), item))
	})

	t.Run("reports a conflict when another writer got there first", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		item, err := inventory.NewStockItem(uuid.New(), 10, 3)
		require.NoError(t, err)
		item.IncrementVersion()

		mock.ExpectExec(`UPDATE "stock_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), item)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
