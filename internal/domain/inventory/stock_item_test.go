package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStockItem(t *testing.T, stock, threshold int64) *StockItem {
	t.Helper()
	item, err := NewStockItem(uuid.New(), stock, threshold)
	require.NoError(t, err)
	return item
}

func TestNewStockItem(t *testing.T) {
	t.Run("creates a ledger entry", func(t *testing.T) {
		productID := uuid.New()
		item, err := NewStockItem(productID, 25, 10)
		require.NoError(t, err)

		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, int64(25), item.Stock)
		assert.Equal(t, int64(10), item.LowStockThreshold)
		assert.Equal(t, 1, item.GetVersion())
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewStockItem(uuid.Nil, 10, 5)
		require.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewStockItem(uuid.New(), -1, 5)
		require.Error(t, err)
	})
}

func TestStockItem_Reserve(t *testing.T) {
	orderID := uuid.New()

	t.Run("decrements stock and records a movement", func(t *testing.T) {
		item := newTestStockItem(t, 10, 2)

		movement, err := item.Reserve(3, orderID)
		require.NoError(t, err)

		assert.Equal(t, int64(7), item.Stock)
		assert.Equal(t, int64(-3), movement.Delta)
		assert.Equal(t, MovementReasonReserve, movement.Reason)
		assert.Equal(t, orderID, movement.OrderID)
		assert.Equal(t, item.ProductID, movement.ProductID)
		assert.Equal(t, 2, item.GetVersion())
	})

	t.Run("reserving exactly the remaining stock succeeds", func(t *testing.T) {
		item := newTestStockItem(t, 5, 2)

		_, err := item.Reserve(5, orderID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), item.Stock)
		assert.True(t, item.IsOutOfStock())
	})

	t.Run("insufficient stock leaves the ledger unchanged", func(t *testing.T) {
		item := newTestStockItem(t, 2, 1)

		_, err := item.Reserve(3, orderID)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(2), item.Stock)
		assert.Equal(t, 1, item.GetVersion())
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		item := newTestStockItem(t, 10, 2)

		_, err := item.Reserve(0, orderID)
		require.Error(t, err)
		_, err = item.Reserve(-1, orderID)
		require.Error(t, err)
	})

	t.Run("rejects missing order id", func(t *testing.T) {
		item := newTestStockItem(t, 10, 2)

		_, err := item.Reserve(1, uuid.Nil)
		require.Error(t, err)
	})

	t.Run("raises low stock event when crossing the threshold", func(t *testing.T) {
		item := newTestStockItem(t, 10, 5)
		item.ClearDomainEvents()

		_, err := item.Reserve(6, orderID)
		require.NoError(t, err)

		events := item.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeStockReserved, events[0].EventType())
		assert.Equal(t, EventTypeStockBelowThreshold, events[1].EventType())
	})
}

func TestStockItem_Release(t *testing.T) {
	orderID := uuid.New()

	t.Run("adds stock back", func(t *testing.T) {
		item := newTestStockItem(t, 3, 2)

		movement, err := item.Release(2, orderID)
		require.NoError(t, err)

		assert.Equal(t, int64(5), item.Stock)
		assert.Equal(t, int64(2), movement.Delta)
		assert.Equal(t, MovementReasonRelease, movement.Reason)
		assert.Equal(t, orderID, movement.OrderID)
	})

	t.Run("reserve then release nets to zero", func(t *testing.T) {
		item := newTestStockItem(t, 10, 2)

		_, err := item.Reserve(4, orderID)
		require.NoError(t, err)
		_, err = item.Release(4, orderID)
		require.NoError(t, err)

		assert.Equal(t, int64(10), item.Stock)
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		item := newTestStockItem(t, 3, 2)

		_, err := item.Release(0, orderID)
		require.Error(t, err)
	})
}

func TestStockItem_Restock(t *testing.T) {
	t.Run("sets absolute levels", func(t *testing.T) {
		item := newTestStockItem(t, 3, 2)

		movement, err := item.Restock(50, 10)
		require.NoError(t, err)

		assert.Equal(t, int64(50), item.Stock)
		assert.Equal(t, int64(10), item.LowStockThreshold)
		assert.Equal(t, int64(47), movement.Delta)
		assert.Equal(t, MovementReasonRestock, movement.Reason)
		assert.Equal(t, uuid.Nil, movement.OrderID)
	})

	t.Run("rejects negative levels", func(t *testing.T) {
		item := newTestStockItem(t, 3, 2)

		_, err := item.Restock(-1, 2)
		require.Error(t, err)
		_, err = item.Restock(5, -1)
		require.Error(t, err)
	})
}

func TestStockItem_DerivedReads(t *testing.T) {
	tests := []struct {
		name       string
		stock      int64
		threshold  int64
		low        bool
		outOfStock bool
	}{
		{"above threshold", 20, 10, false, false},
		{"at threshold", 10, 10, true, false},
		{"below threshold", 5, 10, true, false},
		{"zero stock", 0, 10, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newTestStockItem(t, tt.stock, tt.threshold)
			assert.Equal(t, tt.low, item.IsLowStock())
			assert.Equal(t, tt.outOfStock, item.IsOutOfStock())
		})
	}
}

func TestStockItem_CheckIntegrity(t *testing.T) {
	item := newTestStockItem(t, 5, 2)
	require.NoError(t, item.CheckIntegrity())

	item.Stock = -1
	err := item.CheckIntegrity()
	require.Error(t, err)
	assert.True(t, shared.IsIntegrityError(err))
}
