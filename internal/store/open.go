package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
)

// Open connects the backend selected by cfg.Backend and returns the store
// with a function releasing its connections.
func Open(ctx context.Context, cfg config.StoreConfig) (core.RecordStore, func(), error) {
	switch strings.ToLower(cfg.Backend) {
	case config.StorePostgres:
		pool, err := Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Migrate {
			if err := Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
			slog.Info("database migrations applied")
		}
		return NewPostgres(pool), pool.Close, nil

	case config.StoreRedis:
		rdb, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewRedis(rdb), func() { rdb.Close() }, nil

	case config.StoreMemory:
		return NewMemory(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
