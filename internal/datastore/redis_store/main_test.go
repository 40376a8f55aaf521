package redis_store

import (
	"context"
	"fmt"
	"testing"

	"ecospin/internal/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) redis.UniversalClient {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestActivityFeedOrderAndCap(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	for i := 0; i < feedMaxLength+25; i++ {
		err := PushActivity(ctx, client, &models.ActivityEvent{
			UserID:  int64(i),
			Kind:    models.ActivitySpin,
			Message: fmt.Sprintf("event %d", i),
		})
		if err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	events, err := GetActivityFeed(ctx, client, 0)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}

	if len(events) != feedMaxLength {
		t.Fatalf("feed length = %d, want %d", len(events), feedMaxLength)
	}

	// newest first
	if events[0].UserID != int64(feedMaxLength+24) {
		t.Errorf("head = %d, want %d", events[0].UserID, feedMaxLength+24)
	}
}

func TestActivityFeedLimit(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	for i := 0; i < 10; i++ {
		err := PushActivity(ctx, client, &models.ActivityEvent{UserID: int64(i), Kind: models.ActivityVote})
		if err != nil {
			t.Fatalf("push: %v", err)
		}
	}

	events, err := GetActivityFeed(ctx, client, 3)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("len = %d, want 3", len(events))
	}
}

func TestLeaderboardScoreIsAbsolute(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	scores := map[int64]float64{1: 120, 2: 300, 3: 45}
	for userID, score := range scores {
		err := SetLeaderboardScore(ctx, client, &models.LeaderboardItem{UserID: userID, Score: score})
		if err != nil {
			t.Fatalf("set score: %v", err)
		}
	}

	// re-setting the same user overwrites, never accumulates
	err := SetLeaderboardScore(ctx, client, &models.LeaderboardItem{UserID: 1, Score: 150})
	if err != nil {
		t.Fatalf("set score: %v", err)
	}

	top, err := GetLeaderboardTop(ctx, client, 10)
	if err != nil {
		t.Fatalf("get top: %v", err)
	}

	if len(top) != 3 {
		t.Fatalf("top length = %d, want 3", len(top))
	}
	if top[0].UserID != 2 || top[1].UserID != 1 || top[2].UserID != 3 {
		t.Errorf("order = %d,%d,%d, want 2,1,3", top[0].UserID, top[1].UserID, top[2].UserID)
	}
	if top[1].Score != 150 {
		t.Errorf("user 1 score = %f, want 150", top[1].Score)
	}

	rank, err := GetLeaderboardRank(ctx, client, 3)
	if err != nil {
		t.Fatalf("get rank: %v", err)
	}
	if rank != 3 {
		t.Errorf("rank = %d, want 3", rank)
	}
}
