package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/config"
	"github.com/mamadbah2/salestracker/internal/repository/mongodb"
	"github.com/mamadbah2/salestracker/internal/repository/redis"
	"github.com/mamadbah2/salestracker/internal/repository/store"
	"github.com/mamadbah2/salestracker/internal/server/handlers"
)

// openStore builds the configured backend. The Pinger is nil for backends without a connection.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, handlers.Pinger, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil, noop, nil

	case config.StoreFile:
		fs, err := store.NewFileStore(cfg.Store.Path, logger.Named("store.file"))
		if err != nil {
			return nil, nil, nil, err
		}
		return fs, nil, noop, nil

	case config.StoreMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := repo.Close(context.Background()); err != nil {
				logger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
		return repo, repo, closeFn, nil

	case config.StoreRedis:
		repo, err := redis.NewRepository(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := repo.Close(); err != nil {
				logger.Error("failed to close redis connection", zap.Error(err))
			}
		}
		return repo, repo, closeFn, nil
	}

	return nil, nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
