package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderDelivered = errors.New("order is delivered and can no longer change")
	ErrInvalidStatus  = errors.New("unknown order status")
	ErrAlreadyPaid    = errors.New("order is already marked as paid")
)

// Orders is the order book. Orders are never deleted: they form the audit
// trail, and only status and paymentStatus are mutable after placement.
type Orders struct {
	mu    sync.RWMutex
	store kvstore.Store
	items []domain.Order
}

func NewOrders(ctx context.Context, store kvstore.Store) *Orders {
	r := &Orders{store: store}
	r.Reload(ctx)
	return r
}

func (r *Orders) Reload(ctx context.Context) {
	items := kvstore.Read(ctx, r.store, kvstore.KeyOrders, []domain.Order{})

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
}

// List returns all orders, newest first.
func (r *Orders) List() []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, len(r.items))
	copy(out, r.items)
	return out
}

// ListByUser returns the orders owned by userID, newest first.
func (r *Orders) ListByUser(userID string) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Order
	for _, o := range r.items {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (r *Orders) Get(id string) (domain.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.items {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// Add assigns a fresh id and prepends the order, so the list stays newest
// first.
func (r *Orders) Add(ctx context.Context, o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = newID("ORDER-")
	r.items = append([]domain.Order{o}, r.items...)
	return o, r.persist(ctx)
}

// UpdateStatus moves an order to target. Any later state may be selected
// directly, but a delivered order never changes again.
func (r *Orders) UpdateStatus(ctx context.Context, id string, target domain.OrderStatus) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		if !target.Valid() {
			return domain.Order{}, ErrInvalidStatus
		}
		if !r.items[i].CanTransitionTo(target) {
			return domain.Order{}, ErrOrderDelivered
		}
		r.items[i].Status = target
		return r.items[i], r.persist(ctx)
	}
	return domain.Order{}, ErrOrderNotFound
}

// MarkPaid confirms payment. Pending to Paid only, with no reversal.
func (r *Orders) MarkPaid(ctx context.Context, id string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		if r.items[i].PaymentStatus == domain.PaymentPaid {
			return domain.Order{}, ErrAlreadyPaid
		}
		r.items[i].PaymentStatus = domain.PaymentPaid
		return r.items[i], r.persist(ctx)
	}
	return domain.Order{}, ErrOrderNotFound
}

func (r *Orders) persist(ctx context.Context) error {
	if err := kvstore.Write(ctx, r.store, kvstore.KeyOrders, r.items); err != nil {
		logging.Component("repository").Warn().Err(err).Msg("could not save order list")
		return err
	}
	return nil
}
