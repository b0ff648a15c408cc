// Package bootstrap seeds a fresh store on first run.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/example/bala-store/internal/auth"
	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
)

// Demo account identifiers, stable so restores and docs can refer to them.
const (
	AdminUserID    = "admin1"
	CustomerUserID = "user1"
)

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat1", Name: domain.LocalizedString{EN: "Groceries", TE: "కిరాణా సరుకులు"}, Image: "https://picsum.photos/seed/groceries/400/300"},
		{ID: "cat2", Name: domain.LocalizedString{EN: "Snacks", TE: "చిరుతిళ్లు"}, Image: "https://picsum.photos/seed/snacks/400/300"},
		{ID: "cat3", Name: domain.LocalizedString{EN: "Fancy Items", TE: "ఫ్యాన్సీ వస్తువులు"}, Image: "https://picsum.photos/seed/fancy/400/300"},
	}
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: domain.LocalizedString{EN: "Rice", TE: "బియ్యం"}, Price: 60, Image: "https://picsum.photos/seed/rice/400/300", CategoryID: "cat1", Size: "1 kg", StockStatus: domain.InStock},
		{ID: "p2", Name: domain.LocalizedString{EN: "Toor Dal", TE: "కంది పప్పు"}, Price: 140, Image: "https://picsum.photos/seed/dal/400/300", CategoryID: "cat1", Size: "1 kg", StockStatus: domain.InStock},
		{ID: "p3", Name: domain.LocalizedString{EN: "Sunflower Oil", TE: "పొద్దుతిరుగుడు నూనె"}, Price: 120, Image: "https://picsum.photos/seed/oil/400/300", CategoryID: "cat1", Size: "1 L", StockStatus: domain.InStock},
		{ID: "p4", Name: domain.LocalizedString{EN: "Potato Chips", TE: "బంగాళాదుంప చిప్స్"}, Price: 20, Image: "https://picsum.photos/seed/chips/400/300", CategoryID: "cat2", StockStatus: domain.InStock},
		{ID: "p5", Name: domain.LocalizedString{EN: "Mixture", TE: "మిక్చర్"}, Price: 45, Image: "https://picsum.photos/seed/mixture/400/300", CategoryID: "cat2", Size: "250 g", StockStatus: domain.InStock},
		{ID: "p6", Name: domain.LocalizedString{EN: "Bangles Set", TE: "గాజుల సెట్"}, Price: 99, Image: "https://picsum.photos/seed/bangles/400/300", CategoryID: "cat3", StockStatus: domain.OutOfStock},
	}
}

func sampleUsers() ([]domain.UserAccount, error) {
	adminPass, err := auth.HashSecret("admin123")
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	userPass, err := auth.HashSecret("user123")
	if err != nil {
		return nil, fmt.Errorf("hash customer secret: %w", err)
	}
	return []domain.UserAccount{
		{ID: AdminUserID, Name: "Store Admin", Email: "admin@store.com", Mobile: "1234567890", Pass: adminPass, Role: domain.RoleAdmin},
		{ID: CustomerUserID, Name: "Demo Customer", Email: "user@store.com", Mobile: "9876543210", Pass: userPass, Role: domain.RoleCustomer},
		// Federated sign-in account: no local secret on purpose.
		{ID: auth.FederatedUserID, Name: "Google User", Email: "google.user@gmail.com", Mobile: "1112223334", Role: domain.RoleCustomer},
	}, nil
}

// Initialize seeds sample data the first time the store comes up. A store
// that already carries the sentinel is left untouched, so restarts and
// imported backups keep their data.
func Initialize(ctx context.Context, store kvstore.Store) error {
	log := logging.Component("bootstrap")

	if kvstore.Read(ctx, store, kvstore.KeyInitialized, false) {
		log.Debug().Msg("store already initialized, skipping seed")
		return nil
	}

	users, err := sampleUsers()
	if err != nil {
		return err
	}

	writes := []struct {
		key   string
		value any
	}{
		{kvstore.KeyProducts, sampleProducts()},
		{kvstore.KeyCategories, sampleCategories()},
		{kvstore.KeyOrders, []domain.Order{}},
		{kvstore.KeyUsers, users},
		{kvstore.KeySettings, domain.Settings{}},
		{kvstore.KeyCart, []domain.CartItem{}},
		{kvstore.KeyInitialized, true},
	}
	for _, w := range writes {
		if err := kvstore.Write(ctx, store, w.key, w.value); err != nil {
			return fmt.Errorf("seed %s: %w", w.key, err)
		}
	}

	log.Info().
		Int("products", len(sampleProducts())).
		Int("categories", len(sampleCategories())).
		Int("users", len(users)).
		Msg("seeded sample data")
	return nil
}
