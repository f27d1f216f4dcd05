package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// NewRedisClient dials cfg.Address and fails when the server does not answer a PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Address, err)
	}
	log.Info("Connected to Redis", zap.String("address", cfg.Address), zap.Int("db", cfg.DB))
	return rdb, nil
}

// keyValueCache stores opaque values under prefix+key.
type keyValueCache struct {
	client *redis.Client
	prefix string
	logger *logger.Logger
}

// NewRedisCacheRepository returns a domain.CacheRepository that namespaces every key with prefix.
func NewRedisCacheRepository(client *redis.Client, prefix string, log *logger.Logger) domain.CacheRepository {
	return &keyValueCache{client: client, prefix: prefix, logger: log.Named("RedisCache")}
}

func (c *keyValueCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, domain.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("cache get %q: %w", key, err)
	}
	return val, nil
}

func (c *keyValueCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	c.logger.Debug("Cached value", zap.String("key", key), zap.Int("bytes", len(value)), zap.Duration("ttl", ttl))
	return nil
}

// Delete is a no-op for absent keys.
func (c *keyValueCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}
