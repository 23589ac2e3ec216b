package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	upsertVesselItem = `
INSERT INTO vessel_items (partition_key, sort_key, reporting_period, imo_number, document, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (partition_key, sort_key) DO UPDATE
SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`

	selectVesselItem = `
SELECT document FROM vessel_items
WHERE partition_key = $1 AND sort_key = $2`
)

// Postgres stores vessel items as JSONB documents in the vessel_items table.
type Postgres struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgres wraps an open pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool, now: time.Now}
}

// Connect opens and pings a pool configured from cfg.
func Connect(ctx context.Context, cfg config.StoreConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Put upserts item under key in a single statement.
func (p *Postgres) Put(ctx context.Context, key core.Key, item *core.VesselItem) error {
	updatedAt := p.now()
	data, err := EncodeDocument(key, item, updatedAt)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, upsertVesselItem,
		key.PartitionKey(),
		key.SortKey(),
		pgtype.Int4{Int32: int32(key.ReportingPeriod), Valid: true},
		pgtype.Text{String: key.IMONumber, Valid: true},
		data,
		pgtype.Timestamptz{Time: updatedAt.UTC(), Valid: true},
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key.SortKey(), err)
	}
	return nil
}

// Get returns the item stored under key, or core.ErrNotFound.
func (p *Postgres) Get(ctx context.Context, key core.Key) (*core.VesselItem, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, selectVesselItem, key.PartitionKey(), key.SortKey()).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key.SortKey(), core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key.SortKey(), err)
	}

	item, _, err := DecodeDocument(data)
	return item, err
}
