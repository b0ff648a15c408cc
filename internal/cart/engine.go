// Package cart is the line-item aggregator feeding order placement. The
// cart is device-scoped: it lives under its own persisted key independent of
// the authenticated session, so it survives logouts until checkout clears it
// or it is emptied explicitly.
package cart

import (
	"context"
	"sync"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
)

type Engine struct {
	mu    sync.RWMutex
	store kvstore.Store
	items []domain.CartItem
}

func NewEngine(ctx context.Context, store kvstore.Store) *Engine {
	e := &Engine{store: store}
	e.Reload(ctx)
	return e
}

func (e *Engine) Reload(ctx context.Context) {
	items := kvstore.Read(ctx, e.store, kvstore.KeyCart, []domain.CartItem{})

	e.mu.Lock()
	e.items = items
	e.mu.Unlock()
}

// Items returns the cart lines in insertion order.
func (e *Engine) Items() []domain.CartItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.SnapshotItems(e.items)
}

// Add merges by product id: an existing line gains quantity one, a new
// product appends a fresh line at the end.
func (e *Engine) Add(ctx context.Context, p domain.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == p.ID {
			e.items[i].Quantity++
			return e.persist(ctx)
		}
	}
	e.items = append(e.items, domain.CartItem{Product: p, Quantity: 1})
	return e.persist(ctx)
}

// UpdateQuantity sets a line's quantity exactly. Anything below one removes
// the line: absence, not a zero quantity, represents "not in the cart".
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return e.Remove(ctx, productID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == productID {
			e.items[i].Quantity = quantity
			return e.persist(ctx)
		}
	}
	return nil
}

// Remove drops the matching line. A no-op when absent.
func (e *Engine) Remove(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == productID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			return e.persist(ctx)
		}
	}
	return nil
}

// Total is the sum of price times quantity over all lines.
func (e *Engine) Total() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var total float64
	for _, item := range e.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the sum of quantities, used for the badge display.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var count int
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = []domain.CartItem{}
	return e.persist(ctx)
}

func (e *Engine) persist(ctx context.Context) error {
	if err := kvstore.Write(ctx, e.store, kvstore.KeyCart, e.items); err != nil {
		logging.Component("cart").Warn().Err(err).Msg("could not save cart")
		return err
	}
	return nil
}
