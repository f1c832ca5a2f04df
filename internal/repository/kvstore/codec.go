// Package kvstore implements the session repositories on top of an opaque
// repository.KeyValueStore. Every aggregate is stored as one JSON document.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/repository"
)

const (
	userKeyPrefix   = "user:"
	usersIndexKey   = "users:index"
	swipesKeyPrefix = "swipes:"
	matchKeyPrefix  = "matches:"
	goalKeyPrefix   = "goals:"
	inboxKeyPrefix  = "inbox:"
	walletKeyPrefix = "wallet:"
	dealKeyPrefix   = "deals:"
	notifKeyPrefix  = "notifications:"
)

type codec struct {
	kv     repository.KeyValueStore
	logger *slog.Logger
}

// load decodes the document at key. A missing key yields fallback(); a
// document that fails to decode is logged and also yields fallback().
func load[T any](ctx context.Context, c codec, key string, fallback func() T) (T, error) {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return fallback(), nil
		}
		var zero T
		return zero, fmt.Errorf("kv get %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.logger.Warn("stored state is corrupt, using defaults", "key", key, "error", err)
		return fallback(), nil
	}
	return v, nil
}

func save(ctx context.Context, c codec, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}
