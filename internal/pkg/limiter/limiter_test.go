package limiter

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

func TestLimiterAllowsWithinBudget(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter, err := NewLimiter(client)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	ctx := context.Background()
	limit := redis_rate.PerMinute(3)

	for i := 0; i < 3; i++ {
		if err := limiter.AllowUser(ctx, "vote:1", limit); err != nil {
			t.Fatalf("request %d should pass: %v", i+1, err)
		}
	}

	if err := limiter.AllowUser(ctx, "vote:1", limit); err == nil {
		t.Fatalf("fourth request should be limited")
	}

	// a different key has its own budget
	if err := limiter.AllowUser(ctx, "vote:2", limit); err != nil {
		t.Fatalf("other user should pass: %v", err)
	}
}
