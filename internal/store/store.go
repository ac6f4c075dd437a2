// Package store persists whole collections under stable names. Every higher
// level operation is a Load, an in-memory transformation and, for mutations,
// a Save of the full collection.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNoObject is returned by Store.Get when nothing was ever saved under a name.
	ErrNoObject = errors.New("store: no object")
	// ErrCorruptStore is returned by strict loads when stored bytes do not decode.
	ErrCorruptStore = errors.New("store: corrupt collection")
)

// Store is a get/put-by-name byte store. Any engine that can provide these two
// operations can back the clinic.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// Load reads the named collection. A missing store is an empty collection, and
// so is one whose contents do not decode; the latter is logged.
func Load[T any](ctx context.Context, s Store, name string) ([]T, error) {
	items, err := LoadStrict[T](ctx, s, name)
	if errors.Is(err, ErrCorruptStore) {
		log.Warn().Err(err).Str("store", name).Msg("treating undecodable store as empty")
		return []T{}, nil
	}
	return items, err
}

// LoadStrict is Load but reports undecodable contents as ErrCorruptStore.
func LoadStrict[T any](ctx context.Context, s Store, name string) ([]T, error) {
	data, err := s.Get(ctx, name)
	if errors.Is(err, ErrNoObject) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptStore, name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save serialises the whole collection and overwrites the named store.
func Save[T any](ctx context.Context, s Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store %s: %w", name, err)
	}
	if err := s.Put(ctx, name, data); err != nil {
		return fmt.Errorf("failed to write store %s: %w", name, err)
	}
	return nil
}
