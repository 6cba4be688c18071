package traildb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/kvstore"
)

const getKV = `SELECT value FROM kv_store WHERE key = ?`

const setKV = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

const deleteKV = `DELETE FROM kv_store WHERE key = ?`

// KVStore persists kvstore values in the kv_store table.
type KVStore struct {
	q   *Queries
	now func() time.Time
}

var _ kvstore.Store = (*KVStore)(nil)

func (c *Client) KVStore() *KVStore {
	return &KVStore{q: c.Queries, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.q.db.QueryRowContext(ctx, getKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", kvstore.ErrNotFound
	}
	return value, err
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.q.db.ExecContext(ctx, setKV, key, value, s.now().UnixMilli())
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.q.db.ExecContext(ctx, deleteKV, key)
	return err
}
