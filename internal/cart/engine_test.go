package cart

import (
	"context"
	"testing"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(context.Background(), kvstore.NewMemory())
}

func chips() domain.Product {
	return domain.Product{
		ID:          "p1",
		Name:        domain.LocalizedString{EN: "Chips", TE: "చిప్స్"},
		Price:       20,
		CategoryID:  "cat1",
		StockStatus: domain.InStock,
	}
}

func soda() domain.Product {
	return domain.Product{
		ID:          "p2",
		Name:        domain.LocalizedString{EN: "Soda", TE: "సోడా"},
		Price:       35,
		CategoryID:  "cat2",
		StockStatus: domain.InStock,
	}
}

func TestEngine_AddMergesByProductID(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.Add(ctx, chips()))

	items := e.Items()
	require.Len(t, items, 1, "same product twice must merge, not duplicate")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 40.0, e.Total())
}

func TestEngine_AddPreservesOrder(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.Add(ctx, soda()))
	require.NoError(t, e.Add(ctx, chips()))

	items := e.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID, "merging keeps the existing position")
	assert.Equal(t, "p2", items[1].ID)
}

func TestEngine_UpdateQuantity(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.UpdateQuantity(ctx, "p1", 5))

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 100.0, e.Total())
}

func TestEngine_UpdateQuantityFloor(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{"zero removes", 0},
		{"negative removes", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			ctx := context.Background()

			require.NoError(t, e.Add(ctx, chips()))
			require.NoError(t, e.UpdateQuantity(ctx, "p1", tt.quantity))
			assert.Empty(t, e.Items())
		})
	}
}

func TestEngine_UpdateQuantityUnknownIDIsNoop(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.UpdateQuantity(ctx, "missing", 3))
	assert.Len(t, e.Items(), 1)
}

func TestEngine_Remove(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.Add(ctx, soda()))
	require.NoError(t, e.Remove(ctx, "p1"))
	require.NoError(t, e.Remove(ctx, "p1")) // no-op when absent

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}

func TestEngine_Count(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	assert.Zero(t, e.Count())

	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.Add(ctx, soda()))
	assert.Equal(t, 3, e.Count())
}

func TestEngine_Clear(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.Clear(ctx))

	assert.Empty(t, e.Items())
	assert.Zero(t, e.Total())
	assert.Zero(t, e.Count())
}

func TestEngine_PersistsAcrossInstances(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	e := NewEngine(ctx, store)
	require.NoError(t, e.Add(ctx, chips()))
	require.NoError(t, e.Add(ctx, chips()))

	fresh := NewEngine(ctx, store)
	items := fresh.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestEngine_MalformedPersistedCartFallsBack(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kvstore.KeyCart, []byte(`not json`)))

	e := NewEngine(ctx, store)
	assert.Empty(t, e.Items())
}
