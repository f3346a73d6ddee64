// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package responses stores users' response events. The scoring engine never
// reads a repository itself; the host lists a user's responses and passes
// them in.
//
// Every repository keeps the latest event per (user, item). A Set carrying
// an older AnsweredAt than the stored event is rejected with ErrStale; equal
// timestamps let the newer write win.
package responses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

var (
	// ErrNotFound is returned when no response exists for a key.
	ErrNotFound = errors.New("response not found")

	// ErrStale is returned by Set when the stored response is newer.
	ErrStale = errors.New("a newer response is already stored")

	// ErrInvalidKey is returned for keys with an empty user or item ID.
	ErrInvalidKey = errors.New("response key needs a user and an item")

	// ErrInvalidValue is returned by Set when the response value is out of
	// range for its modality.
	ErrInvalidValue = errors.New("invalid response value")
)

// Key identifies one user's answer to one item.
type Key struct {
	UserID string
	ItemID string
}

func (k Key) String() string { return k.UserID + "/" + k.ItemID }

func (k Key) validate() error {
	if k.UserID == "" || k.ItemID == "" {
		return fmt.Errorf("%w: %q", ErrInvalidKey, k.String())
	}
	return nil
}

// Repository persists the latest response per Key. Implementations are safe
// for concurrent use.
type Repository interface {
	// Get returns the stored response for key, or ErrNotFound.
	Get(ctx context.Context, key Key) (types.ResponseEvent, error)

	// Set stores ev under key and returns the stored event with its ID and
	// timestamp filled in. ev.ItemID is overwritten with key.ItemID. If a
	// newer response is already stored, Set returns it together with ErrStale.
	Set(ctx context.Context, key Key, ev types.ResponseEvent) (types.ResponseEvent, error)

	// Delete removes the response for key, or returns ErrNotFound.
	Delete(ctx context.Context, key Key) error

	// List returns a user's responses ordered by AnsweredAt, then item ID.
	List(ctx context.Context, userID string) ([]types.ResponseEvent, error)

	Close() error
}

// prepare validates ev and fills the fields a repository assigns.
func prepare(key Key, ev types.ResponseEvent) (types.ResponseEvent, error) {
	if err := key.validate(); err != nil {
		return types.ResponseEvent{}, err
	}
	if err := ev.Value.Validate(); err != nil {
		return types.ResponseEvent{}, fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, err)
	}
	ev.ItemID = key.ItemID
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.AnsweredAt.IsZero() {
		ev.AnsweredAt = time.Now()
	}
	ev.AnsweredAt = ev.AnsweredAt.UTC()
	return ev, nil
}

// supersedes reports whether incoming may replace stored.
func supersedes(stored, incoming types.ResponseEvent) bool {
	return !incoming.AnsweredAt.Before(stored.AnsweredAt)
}

func sortEvents(events []types.ResponseEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.AnsweredAt.Equal(b.AnsweredAt) {
			return a.AnsweredAt.Before(b.AnsweredAt)
		}
		return a.ItemID < b.ItemID
	})
}

// Open returns the repository selected by cfg.Backend.
func Open(ctx context.Context, cfg types.StoreConfig, logger *zap.Logger) (Repository, error) {
	switch cfg.Backend {
	case types.StoreMemory:
		return NewMemoryStore(), nil
	case types.StoreSQLite, "":
		return NewSQLiteStore(cfg.SQLitePath)
	case types.StoreRedis:
		return NewRedisStore(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
