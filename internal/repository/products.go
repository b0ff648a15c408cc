package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
)

var ErrProductNotFound = errors.New("product not found")

type Products struct {
	mu    sync.RWMutex
	store kvstore.Store
	items []domain.Product
}

func NewProducts(ctx context.Context, store kvstore.Store) *Products {
	r := &Products{store: store}
	r.Reload(ctx)
	return r
}

// Reload replaces the in-memory collection with whatever is persisted.
func (r *Products) Reload(ctx context.Context) {
	items := kvstore.Read(ctx, r.store, kvstore.KeyProducts, []domain.Product{})
	// Records written before stock tracking existed carry no stockStatus.
	for i := range items {
		if items[i].StockStatus == "" {
			items[i].StockStatus = domain.InStock
		}
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
}

// List returns the products in insertion order.
func (r *Products) List() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Products) Get(id string) (domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Add assigns a fresh id, appends the product and persists the collection.
func (r *Products) Add(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = newID("p")
	if p.StockStatus == "" {
		p.StockStatus = domain.InStock
	}
	r.items = append(r.items, p)
	return p, r.persist(ctx)
}

// Update replaces the record with a matching id. A no-op when absent.
func (r *Products) Update(ctx context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == p.ID {
			r.items[i] = p
			return r.persist(ctx)
		}
	}
	return nil
}

// Delete removes the record with a matching id. A no-op when absent.
func (r *Products) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return r.persist(ctx)
		}
	}
	return nil
}

// SetStockStatus is the narrow patch used by the management surface.
func (r *Products) SetStockStatus(ctx context.Context, id string, status domain.StockStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].StockStatus = status
			return r.persist(ctx)
		}
	}
	return ErrProductNotFound
}

// ToggleStock flips a product between in and out of stock and returns the
// new status.
func (r *Products) ToggleStock(ctx context.Context, id string) (domain.StockStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].StockStatus = r.items[i].StockStatus.Toggled()
			return r.items[i].StockStatus, r.persist(ctx)
		}
	}
	return "", ErrProductNotFound
}

// persist writes the collection back. On failure the in-memory state is
// kept as-is and the error is surfaced to the caller. Callers must hold mu.
func (r *Products) persist(ctx context.Context) error {
	if err := kvstore.Write(ctx, r.store, kvstore.KeyProducts, r.items); err != nil {
		logging.Component("repository").Warn().Err(err).Msg("could not save product list")
		return err
	}
	return nil
}
