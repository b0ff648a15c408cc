package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateAccount = errors.New("an account with this email or mobile already exists")
)

// Users stores account records including their secrets. Consumers that
// expose records externally must sanitize them first; the auth service is
// the only intended caller of the raw accessors.
type Users struct {
	mu    sync.RWMutex
	store kvstore.Store
	items []domain.UserAccount
}

func NewUsers(ctx context.Context, store kvstore.Store) *Users {
	r := &Users{store: store}
	r.Reload(ctx)
	return r
}

func (r *Users) Reload(ctx context.Context) {
	items := kvstore.Read(ctx, r.store, kvstore.KeyUsers, []domain.UserAccount{})

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
}

// List returns the raw records, secrets included.
func (r *Users) List() []domain.UserAccount {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.UserAccount, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Users) Get(id string) (domain.UserAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.ID == id {
			return u, true
		}
	}
	return domain.UserAccount{}, false
}

// FindByIdentifier matches email case-insensitively or mobile exactly.
func (r *Users) FindByIdentifier(identifier string) (domain.UserAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lower := strings.ToLower(identifier)
	for _, u := range r.items {
		if strings.ToLower(u.Email) == lower || (u.Mobile != "" && u.Mobile == identifier) {
			return u, true
		}
	}
	return domain.UserAccount{}, false
}

// Add creates an account. Email uniqueness is case-insensitive; mobile
// uniqueness applies only when a mobile is present. No partial write happens
// on a collision.
func (r *Users) Add(ctx context.Context, u domain.UserAccount) (domain.UserAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lower := strings.ToLower(u.Email)
	for _, existing := range r.items {
		if strings.ToLower(existing.Email) == lower {
			return domain.UserAccount{}, ErrDuplicateAccount
		}
		if u.Mobile != "" && existing.Mobile == u.Mobile {
			return domain.UserAccount{}, ErrDuplicateAccount
		}
	}

	u.ID = newID("u")
	r.items = append(r.items, u)
	return u, r.persist(ctx)
}

// Update replaces the record with a matching id.
func (r *Users) Update(ctx context.Context, u domain.UserAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == u.ID {
			r.items[i] = u
			return r.persist(ctx)
		}
	}
	return ErrUserNotFound
}

// Delete removes an account. Orders owned by the account are kept: order
// history is an audit trail and does not cascade.
func (r *Users) Delete(ctx context.Context, id string) error {
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

func (r *Users) persist(ctx context.Context) error {
	if err := kvstore.Write(ctx, r.store, kvstore.KeyUsers, r.items); err != nil {
		logging.Component("repository").Warn().Err(err).Msg("could not save user list")
		return err
	}
	return nil
}
