package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bala-store/internal/auth"
	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/repository"
)

func TestInitializeSeedsFreshStore(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	require.NoError(t, Initialize(ctx, store))

	products := repository.NewProducts(ctx, store)
	categories := repository.NewCategories(ctx, store)
	users := repository.NewUsers(ctx, store)

	assert.NotEmpty(t, products.List())
	assert.NotEmpty(t, categories.List())
	assert.Len(t, users.List(), 3)
	assert.True(t, kvstore.Read(ctx, store, kvstore.KeyInitialized, false))

	// Every seeded product points at a seeded category.
	known := map[string]bool{}
	for _, c := range categories.List() {
		known[c.ID] = true
	}
	for _, p := range products.List() {
		assert.True(t, known[p.CategoryID], "product %s has unknown category %s", p.ID, p.CategoryID)
	}
}

func TestInitializeSeedsHashedDemoSecrets(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, Initialize(ctx, store))

	users := repository.NewUsers(ctx, store)

	admin, ok := users.Get(AdminUserID)
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NotEqual(t, "admin123", admin.Pass)
	assert.True(t, auth.VerifySecret(admin.Pass, "admin123"))

	customer, ok := users.Get(CustomerUserID)
	require.True(t, ok)
	assert.True(t, auth.VerifySecret(customer.Pass, "user123"))

	federated, ok := users.Get(auth.FederatedUserID)
	require.True(t, ok)
	assert.Empty(t, federated.Pass)
	assert.Equal(t, domain.RoleCustomer, federated.Role)
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, Initialize(ctx, store))

	// Simulate operator edits after first boot.
	products := repository.NewProducts(ctx, store)
	for _, p := range products.List() {
		require.NoError(t, products.Delete(ctx, p.ID))
	}
	require.Empty(t, products.List())

	require.NoError(t, Initialize(ctx, store))

	reloaded := repository.NewProducts(ctx, store)
	assert.Empty(t, reloaded.List(), "second Initialize must not reseed")
}
