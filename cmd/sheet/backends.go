package main

import (
	"context"
	"fmt"
	"log"

	"github.com/sdkfamous/dnd-character-sheet/internal/config"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/idgen"
	"github.com/sdkfamous/dnd-character-sheet/internal/redis"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/cache"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/remote"
)

const fileIDPrefix = "sheet"

// backends holds the configured cache and remote store
type backends struct {
	cache   cache.Repository
	remote  remote.Repository
	closers []func() error
}

func openBackends(ctx context.Context, cfg *config.Config, clk clock.Clock) (*backends, error) {
	b := &backends{}

	if err := b.openCache(ctx, cfg, clk); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.openRemote(ctx, cfg, clk); err != nil {
		b.Close()
		return nil, err
	}

	return b, nil
}

func (b *backends) openCache(ctx context.Context, cfg *config.Config, clk clock.Clock) error {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := redis.NewClient(cfg.RedisURL, &redis.Options{MaxRetries: 3})
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		b.closers = append(b.closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}

		repo, err := cache.NewRedis(&cache.RedisConfig{
			Client: client,
			Prefix: "dnd-sheet:" + cfg.UserID + ":",
		})
		if err != nil {
			return fmt.Errorf("failed to create redis cache: %w", err)
		}
		b.cache = repo

	case config.CacheSQLite:
		repo, err := cache.NewSQLite(ctx, &cache.SQLiteConfig{Path: cfg.SQLitePath, Clock: clk})
		if err != nil {
			return fmt.Errorf("failed to open sqlite cache: %w", err)
		}
		b.closers = append(b.closers, repo.Close)
		b.cache = repo

	default:
		b.cache = cache.NewInMemory()
	}

	log.Printf("Using %s cache", cfg.CacheBackend)
	return nil
}

func (b *backends) openRemote(ctx context.Context, cfg *config.Config, clk clock.Clock) error {
	switch cfg.RemoteBackend {
	case config.RemoteMinio:
		repo, err := remote.NewMinio(&remote.MinioConfig{
			Endpoint:    cfg.MinioEndpoint,
			AccessKey:   cfg.MinioAccessKey,
			SecretKey:   cfg.MinioSecretKey,
			UseSSL:      cfg.MinioUseSSL,
			Bucket:      cfg.MinioBucket,
			UserID:      cfg.UserID,
			IDGenerator: idgen.NewUUID(fileIDPrefix),
			Clock:       clk,
		})
		if err != nil {
			return fmt.Errorf("failed to create minio store: %w", err)
		}
		if err := repo.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to prepare bucket %s: %w", cfg.MinioBucket, err)
		}
		b.remote = repo

	default:
		repo, err := remote.NewInMemory(&remote.InMemoryConfig{
			IDGenerator: idgen.NewUUID(fileIDPrefix),
			Clock:       clk,
		})
		if err != nil {
			return fmt.Errorf("failed to create in-memory store: %w", err)
		}
		b.remote = repo
	}

	log.Printf("Using %s remote store", cfg.RemoteBackend)
	return nil
}

// Close releases every opened backend, newest first
func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Printf("Failed to close backend: %v", err)
		}
	}
	b.closers = nil
}
