// Package kvstore is the persistence layer of the store: a flat key-value
// store holding one JSON document per key. Backends share the contract that
// keys are read and written independently, with no transactionality across
// keys.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/bala-store/internal/logging"
)

var (
	// ErrNotFound is returned by Get when a key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Set when a write would exceed the
	// backend's storage capacity. The classic cause is embedding large
	// images as inline base64.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a durable key-value store with JSON values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Read unmarshals the value under key into a fresh T. A missing key or a
// malformed value never surfaces to the caller: the supplied default is
// returned instead and the failure is logged.
func Read[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Component("kvstore").Warn().Err(err).Str("key", key).
				Msg("read failed, falling back to default")
		}
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.Component("kvstore").Warn().Err(err).Str("key", key).
			Msg("malformed value, falling back to default")
		return def
	}
	return v
}

// Write marshals value and stores it under key.
func Write(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
