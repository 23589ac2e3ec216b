package store

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	testStore(t, NewRedis(rdb))

	if !mr.Exists("EU_MRV_EMISSIONS_DATA:REPORTING_PERIOD#2021#IMO_NUMBER#9876543") {
		t.Errorf("document key not found; keys = %v", mr.Keys())
	}
}

func TestRedis_CorruptDocument(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	key := core.Key{ReportingPeriod: 2021, IMONumber: "9876543"}
	if err := mr.Set(redisKey(key), `{"imo_number":"9876543","extra":true}`); err != nil {
		t.Fatal(err)
	}

	if _, err := NewRedis(rdb).Get(context.Background(), key); !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("Get() = %v, want ErrCorruptDocument", err)
	}
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, closeFn, err := Open(ctx, config.StoreConfig{Backend: config.StoreMemory})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer closeFn()
		if _, ok := s.(*Memory); !ok {
			t.Errorf("Open(memory) = %T", s)
		}
	})

	t.Run("redis", func(t *testing.T) {
		s, closeFn, err := Open(ctx, config.StoreConfig{Backend: config.StoreRedis, RedisAddr: mr.Addr()})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer closeFn()
		if _, ok := s.(*Redis); !ok {
			t.Errorf("Open(redis) = %T", s)
		}
	})

	t.Run("redis unreachable", func(t *testing.T) {
		if _, _, err := Open(ctx, config.StoreConfig{Backend: config.StoreRedis, RedisAddr: "127.0.0.1:1"}); err == nil {
			t.Error("Open succeeded against a closed port")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, _, err := Open(ctx, config.StoreConfig{Backend: "dynamo"}); err == nil {
			t.Error("Open(dynamo) succeeded")
		}
	})
}
