package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFile(dir, 0)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeySettings, []byte(`{"upiId":"shop@upi","qrCode":""}`)))

	reopened, err := NewFile(dir, 0)
	require.NoError(t, err)
	raw, err := reopened.Get(ctx, KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"upiId":"shop@upi","qrCode":""}`, string(raw))
}

func TestFile_GetMissing(t *testing.T) {
	store, err := NewFile(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), KeyOrders)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFile_QuotaExceeded(t *testing.T) {
	store, err := NewFile(t.TempDir(), 32)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCategories, []byte(`[{"id":"cat1"}]`)))

	// A second key pushing the total past the quota must fail without
	// touching existing data.
	err = store.Set(ctx, KeyProducts, []byte(`[{"id":"p1","image":"data:image/png;base64,AAAA"}]`))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	raw, err := store.Get(ctx, KeyCategories)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"cat1"}]`, string(raw))
}

func TestFile_RewriteSameKeyWithinQuota(t *testing.T) {
	store, err := NewFile(t.TempDir(), 64)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyProducts, []byte(`[{"id":"p1"}]`)))
	// Rewriting the same key replaces its usage rather than stacking it.
	require.NoError(t, store.Set(ctx, KeyProducts, []byte(`[{"id":"p1"},{"id":"p2"}]`)))
}

func TestFile_Delete(t *testing.T) {
	store, err := NewFile(t.TempDir(), 0)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, KeyCart))
	require.NoError(t, store.Delete(ctx, KeyCart))

	_, err = store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)
}
