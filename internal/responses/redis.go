// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pdiddy/ballot-builder/internal/logging"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

const (
	redisKeyPrefix = "ballot-builder:responses:"

	// setRetries bounds optimistic-lock retries when concurrent writers touch
	// the same user hash.
	setRetries = 5
)

// RedisStore keeps one hash per user: field is the item ID, value is the
// JSON-encoded event.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStore connects to the server in cfg and verifies it with a PING.
func NewRedisStore(ctx context.Context, cfg types.StoreConfig, logger *zap.Logger) (*RedisStore, error) {
	logger = logging.OrNop(logger)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Debug("redis response store ready", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return &RedisStore{client: client, prefix: redisKeyPrefix, logger: logger}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) userKey(userID string) string {
	return r.prefix + userID
}

func (r *RedisStore) Get(ctx context.Context, key Key) (types.ResponseEvent, error) {
	return r.get(ctx, r.client, key)
}

type hashGetter interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

func (r *RedisStore) get(ctx context.Context, c hashGetter, key Key) (types.ResponseEvent, error) {
	data, err := c.HGet(ctx, r.userKey(key.UserID), key.ItemID).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.ResponseEvent{}, ErrNotFound
	}
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("reading response %s: %w", key, err)
	}

	var ev types.ResponseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return types.ResponseEvent{}, fmt.Errorf("decoding response %s: %w", key, err)
	}
	return ev, nil
}

// Set compares and writes under WATCH so a concurrent newer write is never
// overwritten.
func (r *RedisStore) Set(ctx context.Context, key Key, ev types.ResponseEvent) (types.ResponseEvent, error) {
	ev, err := prepare(key, ev)
	if err != nil {
		return types.ResponseEvent{}, err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return types.ResponseEvent{}, fmt.Errorf("encoding response %s: %w", key, err)
	}

	hash := r.userKey(key.UserID)
	var stale *types.ResponseEvent

	txf := func(tx *redis.Tx) error {
		stale = nil
		stored, err := r.get(ctx, tx, key)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return err
		case !supersedes(stored, ev):
			stale = &stored
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, hash, key.ItemID, data)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < setRetries; attempt++ {
		err = r.client.Watch(ctx, txf, hash)
		if errors.Is(err, redis.TxFailedErr) {
			r.logger.Debug("retrying contended response write", zap.String("key", key.String()), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return types.ResponseEvent{}, fmt.Errorf("writing response %s: %w", key, err)
		}
		if stale != nil {
			return *stale, ErrStale
		}
		return ev, nil
	}
	return types.ResponseEvent{}, fmt.Errorf("writing response %s: %w", key, redis.TxFailedErr)
}

func (r *RedisStore) Delete(ctx context.Context, key Key) error {
	n, err := r.client.HDel(ctx, r.userKey(key.UserID), key.ItemID).Result()
	if err != nil {
		return fmt.Errorf("deleting response %s: %w", key, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context, userID string) ([]types.ResponseEvent, error) {
	fields, err := r.client.HGetAll(ctx, r.userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing responses for %q: %w", userID, err)
	}

	out := make([]types.ResponseEvent, 0, len(fields))
	for itemID, data := range fields {
		var ev types.ResponseEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return nil, fmt.Errorf("decoding response %s/%s: %w", userID, itemID, err)
		}
		out = append(out, ev)
	}
	sortEvents(out)
	return out, nil
}
