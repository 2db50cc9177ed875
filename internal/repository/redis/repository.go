package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mamadbah2/salestracker/internal/repository/store"
)

const defaultKeyPrefix = "salestracker:"

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Repository implements store.Store on Redis string keys.
type Repository struct {
	client    *goredis.Client
	keyPrefix string
}

// NewRepository connects to Redis and verifies the connection.
func NewRepository(ctx context.Context, cfg Config) (*Repository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRepositoryWithClient(client, defaultKeyPrefix), nil
}

// NewRepositoryWithClient wraps an existing client.
func NewRepositoryWithClient(client *goredis.Client, keyPrefix string) *Repository {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &Repository{client: client, keyPrefix: keyPrefix}
}

// Get loads the value stored under key.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, store.ErrEmptyKey
	}

	value, err := r.client.Get(ctx, r.keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key without expiration.
func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if err := r.client.Set(ctx, r.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if err := r.client.Del(ctx, r.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Repository) Close() error {
	return r.client.Close()
}

var _ store.Store = (*Repository)(nil)
