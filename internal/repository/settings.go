package repository

import (
	"context"
	"sync"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/logging"
)

// Settings holds the single store-configuration record.
type Settings struct {
	mu      sync.RWMutex
	store   kvstore.Store
	current domain.Settings
}

func NewSettings(ctx context.Context, store kvstore.Store) *Settings {
	r := &Settings{store: store}
	r.Reload(ctx)
	return r
}

func (r *Settings) Reload(ctx context.Context) {
	current := kvstore.Read(ctx, r.store, kvstore.KeySettings, domain.Settings{})

	r.mu.Lock()
	r.current = current
	r.mu.Unlock()
}

func (r *Settings) Get() domain.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Settings) Save(ctx context.Context, s domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = s
	if err := kvstore.Write(ctx, r.store, kvstore.KeySettings, r.current); err != nil {
		logging.Component("repository").Warn().Err(err).Msg("could not save store settings")
		return err
	}
	return nil
}
