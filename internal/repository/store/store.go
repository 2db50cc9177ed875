package store

import (
	"context"
	"errors"
)

// ErrEmptyKey indicates a store operation without a key.
var ErrEmptyKey = errors.New("store key must not be empty")

// Store is the key-value persistence used for the sales ledger.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
