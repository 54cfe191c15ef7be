package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/lumina/internal/db"
	"github.com/andy/lumina/internal/store"
)

// KVRepo is a SQLite implementation of store.Store
type KVRepo struct {
	db *db.DB
}

// NewKVRepo creates a new KVRepo
func NewKVRepo(database *db.DB) *KVRepo {
	return &KVRepo{db: database}
}

// Get retrieves the value stored under key
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key.
// Values larger than the configured limit are rejected with store.ErrStorageUnavailable.
func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	limit, err := r.Limit(ctx)
	if err != nil {
		return err
	}
	if limit > 0 && len(value) > limit {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", store.ErrStorageUnavailable, key, len(value), limit)
	}

	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", store.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Limit returns the maximum size of a single stored value; 0 means no limit
func (r *KVRepo) Limit(ctx context.Context) (int, error) {
	var limit int
	err := r.db.QueryRowContext(ctx, "SELECT max_value_bytes FROM kv_limits WHERE id = 1").Scan(&limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to read storage limit: %w", err)
	}
	return limit, nil
}

// KeySize is the stored size of one key
type KeySize struct {
	Key   string
	Bytes int
}

// Sizes lists every stored key with the size of its value
func (r *KVRepo) Sizes(ctx context.Context) ([]KeySize, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, length(value) FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var sizes []KeySize
	for rows.Next() {
		var ks KeySize
		if err := rows.Scan(&ks.Key, &ks.Bytes); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		sizes = append(sizes, ks)
	}
	return sizes, rows.Err()
}

// SetLimit changes the maximum size of a single stored value
func (r *KVRepo) SetLimit(ctx context.Context, maxBytes int) error {
	_, err := r.db.ExecContext(ctx, "UPDATE kv_limits SET max_value_bytes = ? WHERE id = 1", maxBytes)
	if err != nil {
		return fmt.Errorf("failed to update storage limit: %w", err)
	}
	return nil
}

// Reset removes every stored key
func (r *KVRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv"); err != nil {
		return fmt.Errorf("failed to reset storage: %w", err)
	}
	return nil
}
