// Package store holds the key/value persistence contract and the
// load-or-default helpers every persisted record goes through.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrStorageUnavailable is returned when a value cannot be written,
// typically because it exceeds the store quota.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is a flat key to bytes store. Keys are independent: a damaged
// value under one key never affects reads of another.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the value stored under key into a T.
// A missing key yields def. A value that fails to decode is logged,
// removed from the store and also yields def. Only store errors are returned.
func LoadJSON[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return def, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		zap.L().Warn("discarding corrupt stored value",
			zap.String("key", key),
			zap.Error(err),
		)
		if delErr := s.Delete(ctx, key); delErr != nil {
			zap.L().Error("failed to clear corrupt value", zap.String("key", key), zap.Error(delErr))
		}
		return def, nil
	}

	return v, nil
}

// SaveJSON encodes v and stores it under key
func SaveJSON[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
