// Package backup moves the whole store state in and out of a single
// portable JSON document.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/bala-store/internal/cart"
	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/repository"
)

// ErrInvalidBackupFormat is returned when a document is missing one of the
// five required sections. Nothing is written in that case.
var ErrInvalidBackupFormat = errors.New("invalid or incomplete backup file")

// Document is the portable backup shape. Users are exported with their
// secrets: this is an operator backup, not a sanitized-for-sharing format.
// The cart is deliberately excluded.
type Document struct {
	Products   []domain.Product     `json:"products"`
	Categories []domain.Category    `json:"categories"`
	Orders     []domain.Order       `json:"orders"`
	Users      []domain.UserAccount `json:"users"`
	Settings   domain.Settings      `json:"settings"`
}

var requiredSections = []string{"products", "categories", "orders", "users", "settings"}

// Bridge ties the repositories to the portable format.
type Bridge struct {
	store      kvstore.Store
	products   *repository.Products
	categories *repository.Categories
	orders     *repository.Orders
	users      *repository.Users
	settings   *repository.Settings
	cart       *cart.Engine
}

func NewBridge(
	store kvstore.Store,
	products *repository.Products,
	categories *repository.Categories,
	orders *repository.Orders,
	users *repository.Users,
	settings *repository.Settings,
	cartEngine *cart.Engine,
) *Bridge {
	return &Bridge{
		store:      store,
		products:   products,
		categories: categories,
		orders:     orders,
		users:      users,
		settings:   settings,
		cart:       cartEngine,
	}
}

// FileName builds the download name for an export taken at t.
func FileName(t time.Time) string {
	return "bala-store-backup-" + t.UTC().Format("2006-01-02") + ".json"
}

// Export bundles the five collections as of now.
func (b *Bridge) Export(ctx context.Context) Document {
	return Document{
		Products:   b.products.List(),
		Categories: b.categories.List(),
		Orders:     b.orders.List(),
		Users:      b.users.List(),
		Settings:   b.settings.Get(),
	}
}

// Import validates the document shape, overwrites the five persisted
// collections and reloads everything from the store. Validation happens
// before any key is touched; the five writes themselves are sequential with
// no rollback, matching the store's per-key contract. The cart is always
// cleared, whatever the backup contains.
func (b *Bridge) Import(ctx context.Context, data []byte) error {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
	}
	for _, name := range requiredSections {
		raw, ok := sections[name]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("%w: missing %q", ErrInvalidBackupFormat, name)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
	}

	writes := []struct {
		key   string
		value any
	}{
		{kvstore.KeyProducts, doc.Products},
		{kvstore.KeyCategories, doc.Categories},
		{kvstore.KeyOrders, doc.Orders},
		{kvstore.KeyUsers, doc.Users},
		{kvstore.KeySettings, doc.Settings},
		{kvstore.KeyCart, []domain.CartItem{}},
		{kvstore.KeyInitialized, true},
	}
	for _, w := range writes {
		if err := kvstore.Write(ctx, b.store, w.key, w.value); err != nil {
			return err
		}
	}

	b.reload(ctx)
	return nil
}

// reload re-reads every collection from the now-updated store, the restart
// equivalent of the original's full page reload.
func (b *Bridge) reload(ctx context.Context) {
	b.products.Reload(ctx)
	b.categories.Reload(ctx)
	b.orders.Reload(ctx)
	b.users.Reload(ctx)
	b.settings.Reload(ctx)
	b.cart.Reload(ctx)
}
