package repository

import (
	"context"
	"testing"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProducts(t *testing.T) (*Products, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	return NewProducts(context.Background(), store), store
}

func sampleProduct() domain.Product {
	return domain.Product{
		Name:       domain.LocalizedString{EN: "Chips", TE: "చిప్స్"},
		Price:      20,
		Image:      "data:image/png;base64,xxxx",
		CategoryID: "cat1",
	}
}

// ============================================
// Add / id generation
// ============================================

func TestProducts_AddAssignsUniqueIDs(t *testing.T) {
	r, _ := newTestProducts(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	// Tight loop: many of these land in the same millisecond.
	for i := 0; i < 200; i++ {
		p, err := r.Add(ctx, sampleProduct())
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestProducts_AddDefaultsStockStatus(t *testing.T) {
	r, _ := newTestProducts(t)

	p, err := r.Add(context.Background(), sampleProduct())
	require.NoError(t, err)
	assert.Equal(t, domain.InStock, p.StockStatus)
}

func TestProducts_ListInsertionOrder(t *testing.T) {
	r, _ := newTestProducts(t)
	ctx := context.Background()

	first, _ := r.Add(ctx, sampleProduct())
	second, _ := r.Add(ctx, sampleProduct())

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

// ============================================
// Update / Delete
// ============================================

func TestProducts_UpdateReplacesRecord(t *testing.T) {
	r, _ := newTestProducts(t)
	ctx := context.Background()

	p, _ := r.Add(ctx, sampleProduct())
	p.Price = 25
	p.Size = "100g"
	require.NoError(t, r.Update(ctx, p))

	got, ok := r.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, 25.0, got.Price)
	assert.Equal(t, "100g", got.Size)
}

func TestProducts_UpdateUnknownIDIsNoop(t *testing.T) {
	r, _ := newTestProducts(t)
	ctx := context.Background()

	r.Add(ctx, sampleProduct())
	require.NoError(t, r.Update(ctx, domain.Product{ID: "missing", Price: 99}))
	assert.Len(t, r.List(), 1)
}

func TestProducts_Delete(t *testing.T) {
	r, _ := newTestProducts(t)
	ctx := context.Background()

	p, _ := r.Add(ctx, sampleProduct())
	require.NoError(t, r.Delete(ctx, p.ID))
	require.NoError(t, r.Delete(ctx, p.ID)) // no-op when already gone

	_, ok := r.Get(p.ID)
	assert.False(t, ok)
}

// ============================================
// Stock status
// ============================================

func TestProducts_ToggleStock(t *testing.T) {
	r, _ := newTestProducts(t)
	ctx := context.Background()

	p, _ := r.Add(ctx, sampleProduct())

	status, err := r.ToggleStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutOfStock, status)

	status, err = r.ToggleStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InStock, status)
}

func TestProducts_ToggleStockUnknownID(t *testing.T) {
	r, _ := newTestProducts(t)

	_, err := r.ToggleStock(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProducts_SetStockStatus(t *testing.T) {
	r, _ := newTestProducts(t)
	ctx := context.Background()

	p, _ := r.Add(ctx, sampleProduct())
	require.NoError(t, r.SetStockStatus(ctx, p.ID, domain.OutOfStock))

	got, _ := r.Get(p.ID)
	assert.Equal(t, domain.OutOfStock, got.StockStatus)
}

// ============================================
// Load / migration
// ============================================

func TestProducts_ReloadMigratesMissingStockStatus(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	// A record written before stock tracking existed.
	legacy := `[{"id":"p1","name":{"en":"Rice","te":"బియ్యం"},"price":60,"image":"","categoryId":"cat1"}]`
	require.NoError(t, store.Set(ctx, kvstore.KeyProducts, []byte(legacy)))

	r := NewProducts(ctx, store)
	got, ok := r.Get("p1")
	require.True(t, ok)
	assert.Equal(t, domain.InStock, got.StockStatus)
}

func TestProducts_ReloadMalformedDataFallsBack(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kvstore.KeyProducts, []byte(`{"not":"a list"`)))

	r := NewProducts(ctx, store)
	assert.Empty(t, r.List())
}

func TestProducts_PersistedAcrossInstances(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	first := NewProducts(ctx, store)
	p, err := first.Add(ctx, sampleProduct())
	require.NoError(t, err)

	second := NewProducts(ctx, store)
	got, ok := second.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)
}
