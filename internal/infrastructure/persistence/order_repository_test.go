package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/ordering"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func orderRows(orderNumber string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "order_number", "invoice_number", "user_id",
		"items", "subtotal", "tax", "delivery_charges", "discount", "total",
		"customer", "payment_method", "payment_status", "status", "status_history",
		"estimated_delivery", "version", "created_at", "updated_at",
	}).AddRow(
		uuid.New(), orderNumber, "INV-2026-000001", "user-1",
		`[{"product_id":"`+uuid.NewString()+`","name":"Chocolate Cake","size":"500g","quantity":1,"price":"450"}]`,
		"450", "22.50", "50", "0", "522.50",
		`{"name":"Asha","phone":"9876543210","email":"asha@example.com","address":{"line1":"12 Rose St","city":"Chennai","state":"TN","pincode":"600001","type":"home"}}`,
		"cod", "pending", "pending",
		`[{"status":"pending","timestamp":"`+now.Format(time.RFC3339)+`"}]`,
		now.AddDate(0, 0, 3), 1, now, now,
	)
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	t.Run("finds an order by its customer-facing number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ORD-2026-000001", 1).
			WillReturnRows(orderRows("ORD-2026-000001"))

		order, err := repo.FindByOrderNumber(context.Background(), "ORD-2026-000001")

		require.NoError(t, err)
		assert.Equal(t, "ORD-2026-000001", order.OrderNumber)
		assert.Equal(t, ordering.OrderStatusPending, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Chocolate Cake", order.Items[0].ProductName)
	})

	t.Run("returns not found for an unknown number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ORD-2026-999999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByOrderNumber(context.Background(), "ORD-2026-999999")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("serializes the status history on update", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		now := time.Now()
		order := &ordering.Order{
			Status: ordering.OrderStatusConfirmed,
			StatusHistory: ordering.StatusHistory{
				{Status: ordering.OrderStatusPending, Timestamp: now.Add(-time.Minute)},
				{Status: ordering.OrderStatusConfirmed, Timestamp: now},
			},
			PaymentStatus: ordering.PaymentStatusPending,
		}
		order.ID = uuid.New()
		order.Version = 2

		// History entries must reach the driver as JSON text. A raw
		// StatusChange slice would be rejected during statement binding,
		// so a clean exec here means the serializer ran.
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), order)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a conflict when the stored version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order := &ordering.Order{}
		order.ID = uuid.New()
		order.Version = 2
		order.Status = ordering.OrderStatusConfirmed

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), order)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormOrderRepository_CountByStatus(t *testing.T) {
	t.Run("counts orders in a status", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE status = \$1`).
			WithArgs(ordering.OrderStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByStatus(context.Background(), ordering.OrderStatusPending)

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}
