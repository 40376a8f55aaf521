package caching

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) Cache {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c, err := NewCacheRedis(client, false)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return c
}

func TestUseCacheCallsCallbackOnceWhileFresh(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	calls := 0
	callback := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := UseCache(ctx, c, "key", time.Minute, callback)
		if err != nil {
			t.Fatalf("use cache: %v", err)
		}
		if got != "value" {
			t.Fatalf("got %q", got)
		}
	}

	if calls != 1 {
		t.Errorf("callback called %d times, want 1", calls)
	}
}

func TestUseCachePropagatesCallbackError(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	boom := errors.New("boom")
	_, err := UseCache(ctx, c, "key", time.Minute, func() (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}

	// the failure must not be cached
	got, err := UseCache(ctx, c, "key", time.Minute, func() (int, error) {
		return 7, nil
	})
	if err != nil || got != 7 {
		t.Errorf("got %d, %v", got, err)
	}
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	if err := c.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var v string
	if err := c.Get(ctx, "key", &v); err == nil {
		t.Errorf("deleted key should miss")
	}
}
