package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ============================================
// Read / Write Tests
// ============================================

func TestReadWrite_RoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	in := []record{{Name: "Chips", Price: 20}, {Name: "Soda", Price: 35.5}}
	require.NoError(t, Write(ctx, store, "products", in))

	out := Read(ctx, store, "products", []record{})
	assert.Equal(t, in, out)
}

func TestRead_MissingKeyReturnsDefault(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	out := Read(ctx, store, "orders", []record{})
	assert.Empty(t, out)

	flag := Read(ctx, store, "is_initialized", false)
	assert.False(t, flag)
}

func TestRead_MalformedValueReturnsDefault(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
	}{
		{"truncated object", `{"name": "Chi`},
		{"wrong shape", `"just a string"`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "products", []byte(tt.raw)))

			out := Read(ctx, store, "products", []record{{Name: "fallback"}})
			assert.Equal(t, []record{{Name: "fallback"}}, out)
		})
	}
}

func TestMemory_GetMissing(t *testing.T) {
	store := NewMemory()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_DeleteIsIdempotent(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "cart"))
	require.NoError(t, store.Delete(ctx, "cart"))

	_, err := store.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`)))
	raw, err := store.Get(ctx, "k")
	require.NoError(t, err)
	raw[0] = 'x'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again)
}
