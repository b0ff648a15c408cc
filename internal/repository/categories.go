package repository

import (
	"context"
	"sync"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
)

type Categories struct {
	mu    sync.RWMutex
	store kvstore.Store
	items []domain.Category
}

func NewCategories(ctx context.Context, store kvstore.Store) *Categories {
	r := &Categories{store: store}
	r.Reload(ctx)
	return r
}

func (r *Categories) Reload(ctx context.Context) {
	items := kvstore.Read(ctx, r.store, kvstore.KeyCategories, []domain.Category{})

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
}

func (r *Categories) List() []domain.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Categories) Get(id string) (domain.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (r *Categories) Add(ctx context.Context, c domain.Category) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = newID("cat")
	r.items = append(r.items, c)
	return c, r.persist(ctx)
}

func (r *Categories) Update(ctx context.Context, c domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == c.ID {
			r.items[i] = c
			return r.persist(ctx)
		}
	}
	return nil
}

// Delete removes a category. Products referencing it keep their categoryId:
// an orphaned reference is a displayable fallback, not an error.
func (r *Categories) Delete(ctx context.Context, id string) error {
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

func (r *Categories) persist(ctx context.Context) error {
	if err := kvstore.Write(ctx, r.store, kvstore.KeyCategories, r.items); err != nil {
		logging.Component("repository").Warn().Err(err).Msg("could not save category list")
		return err
	}
	return nil
}
