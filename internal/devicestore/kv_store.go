package devicestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const createStorageTable = `
	CREATE TABLE IF NOT EXISTS device_storage (
		item_key TEXT NOT NULL PRIMARY KEY,
		item_value TEXT NOT NULL
	)`

// KVStore is a small string key/value store kept in a SQLite file on the
// device.
type KVStore struct {
	db *sql.DB
}

func NewKVStore(ctx context.Context, db *sql.DB) (*KVStore, error) {
	if _, err := db.ExecContext(ctx, createStorageTable); err != nil {
		return nil, fmt.Errorf("creating device storage table: %w", err)
	}
	return &KVStore{db: db}, nil
}

// GetItem returns the stored value and whether the key exists.
func (s *KVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT item_value FROM device_storage WHERE item_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO device_storage (item_key, item_value) VALUES (?, ?)
		ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value`, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM device_storage WHERE item_key = ?`, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
