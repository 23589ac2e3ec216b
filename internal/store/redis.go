package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/redis/go-redis/v9"
)

// Redis stores each vessel item document under "<partition>:<sort key>".
type Redis struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, now: time.Now}
}

// ConnectRedis creates and pings a client configured from cfg.
func ConnectRedis(ctx context.Context, cfg config.StoreConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}

func redisKey(key core.Key) string {
	return key.PartitionKey() + ":" + key.SortKey()
}

// Put stores item under key with no expiry, replacing any previous version.
func (r *Redis) Put(ctx context.Context, key core.Key, item *core.VesselItem) error {
	data, err := EncodeDocument(key, item, r.now())
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key.SortKey(), err)
	}
	return nil
}

// Get returns the item stored under key, or core.ErrNotFound.
func (r *Redis) Get(ctx context.Context, key core.Key) (*core.VesselItem, error) {
	data, err := r.rdb.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", key.SortKey(), core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key.SortKey(), err)
	}

	item, _, err := DecodeDocument(data)
	return item, err
}
