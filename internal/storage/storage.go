// Package storage is the durable key-value layer the stores mirror their state to.
// Values are JSON documents under string keys, last writer wins.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the persisted state layout.
const (
	KeyUser  = "user"
	KeyPosts = "posts"
)

var (
	// ErrKeyNotFound is returned by Get when the key is absent.
	ErrKeyNotFound = errors.New("storage: key not found")
	// ErrCorrupt marks a stored value that does not decode.
	ErrCorrupt = errors.New("storage: corrupt value")
)

// KV is a string-keyed durable store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the value under key into v. found is false if the key is absent.
func GetJSON(ctx context.Context, kv KV, key string, v any) (found bool, err error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %w", ErrCorrupt, key, err)
	}
	return true, nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
