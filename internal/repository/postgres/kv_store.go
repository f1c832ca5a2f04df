package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type kvStore struct {
	db *sqlx.DB
}

// NewKeyValueStore keeps session state in the kv_store table.
func NewKeyValueStore(db *sqlx.DB) repository.KeyValueStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv_store WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	return err
}

func (s *kvStore) Close() error {
	return s.db.Close()
}
