package cache

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	redisclient "github.com/sdkfamous/dnd-character-sheet/internal/redis"
)

const defaultRedisPrefix = "dnd-sheet:"

// RedisConfig holds the configuration for the Redis cache
type RedisConfig struct {
	Client redisclient.Client
	// Prefix namespaces every key, e.g. per user
	Prefix string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	prefix string
}

// NewRedis creates a Redis backed cache
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &redisRepository{
		client: cfg.Client,
		prefix: prefix,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	value, err := r.client.Get(ctx, r.prefix+input.Key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("cache key %s not found", input.Key)
		}
		slog.ErrorContext(ctx, "failed to read cache", "cache_key", input.Key, "error", err)
		return nil, errors.Wrapf(err, "failed to read %s from Redis", input.Key)
	}

	return &GetOutput{Value: value}, nil
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	if err := r.client.Set(ctx, r.prefix+input.Key, input.Value, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s to Redis", input.Key)
	}

	slog.DebugContext(ctx, "cache written", "cache_key", input.Key, "bytes", len(input.Value))
	return &SetOutput{}, nil
}

func (r *redisRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	if err := r.client.Del(ctx, r.prefix+input.Key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to remove %s from Redis", input.Key)
	}

	return &RemoveOutput{}, nil
}
