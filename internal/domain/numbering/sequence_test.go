package numbering

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(_ context.Context, name string, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%s/%d", name, year)
	r.counters[key]++
	return r.counters[key], nil
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "ORD-2025-000042", FormatNumber("ORD", 2025, 42))
	assert.Equal(t, "INV-2025-000001", FormatNumber("INV", 2025, 1))
	assert.Equal(t, "ORD-2025-1000000", FormatNumber("ORD", 2025, 1000000))
}

func TestNewSequence(t *testing.T) {
	seq, err := NewSequence("order", 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq.Counter)

	_, err = NewSequence("", 2025)
	require.Error(t, err)
}

func TestService_Numbers(t *testing.T) {
	repo := newFakeSequenceRepo()
	svc := NewService(repo, "ORD", "INV")
	ctx := context.Background()

	t.Run("order and invoice counters are independent", func(t *testing.T) {
		first, err := svc.NextOrderNumber(ctx)
		require.NoError(t, err)
		second, err := svc.NextOrderNumber(ctx)
		require.NoError(t, err)
		invoice, err := svc.NextInvoiceNumber(ctx)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Contains(t, first, "ORD-")
		assert.Contains(t, invoice, "INV-")
		assert.Contains(t, invoice, "-000001")
	})

	t.Run("concurrent callers never share a number", func(t *testing.T) {
		repo := newFakeSequenceRepo()
		svc := NewService(repo, "ORD", "INV")

		const workers = 50
		numbers := make(chan string, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := svc.NextOrderNumber(ctx)
				assert.NoError(t, err)
				numbers <- n
			}()
		}
		wg.Wait()
		close(numbers)

		seen := make(map[string]bool, workers)
		for n := range numbers {
			assert.False(t, seen[n], "duplicate number %s", n)
			seen[n] = true
		}
		assert.Len(t, seen, workers)
	})
}
