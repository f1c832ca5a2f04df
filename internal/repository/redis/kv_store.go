package redis

import (
	"context"
	"errors"

	"github.com/alliyn/alliyn-backend/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "alliyn:"

type kvStore struct {
	client *goredis.Client
	prefix string
}

// NewKeyValueStore stores every key under the "alliyn:" namespace.
func NewKeyValueStore(client *goredis.Client) repository.KeyValueStore {
	return &kvStore{client: client, prefix: defaultPrefix}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", repository.ErrKeyNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *kvStore) Close() error {
	return s.client.Close()
}
