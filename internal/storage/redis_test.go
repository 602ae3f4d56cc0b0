package storage

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) (*RedisRecordStore, *miniredis.Miniredis) {
	t.Helper()
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(m.Close)
	store := NewRedisRecordStore(redis.NewClient(&redis.Options{Addr: m.Addr()}), DefaultRedisPrefix)
	t.Cleanup(func() { _ = store.Close() })
	return store, m
}

func TestRedisRecordStorePutGet(t *testing.T) {
	store, m := setupRedis(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, KeyTasks); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(ctx, KeyTasks, []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, KeyTasks)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("unexpected value %s", got)
	}

	raw, err := m.Get("questd:tasks")
	if err != nil {
		t.Fatalf("expected prefixed key in redis: %v", err)
	}
	if raw != `[]` {
		t.Fatalf("unexpected raw redis value %q", raw)
	}
}

func TestOpenRedis(t *testing.T) {
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer m.Close()

	store, err := OpenRedis(context.Background(), "redis://"+m.Addr(), "test:")
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer store.Close()

	if err := store.Put(context.Background(), KeyStats, []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !m.Exists("test:stats") {
		t.Fatal("expected key test:stats")
	}

	if _, err := OpenRedis(context.Background(), "not a url", ""); err == nil {
		t.Fatal("expected error for bad url")
	}
}
