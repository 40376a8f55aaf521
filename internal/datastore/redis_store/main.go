package redis_store

import (
	"context"
	"fmt"

	"ecospin/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const feedMaxLength = 200

func dbKeyActivityFeed() string {
	return "activity:feed"
}

func dbKeyPointsLeaderboard() string {
	return "leaderboard:points"
}

// PushActivity prepends an event to the realtime feed, capped at
// feedMaxLength entries. Postgres keeps the full history; this list is only
// the hot window clients poll.
func PushActivity(ctx context.Context, cmd redis.Cmdable, event *models.ActivityEvent) error {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return err
	}

	err = cmd.LPush(ctx, dbKeyActivityFeed(), b).Err()
	if err != nil {
		return err
	}

	return cmd.LTrim(ctx, dbKeyActivityFeed(), 0, feedMaxLength-1).Err()
}

func GetActivityFeed(ctx context.Context, cmd redis.Cmdable, limit int) ([]*models.ActivityEvent, error) {
	if limit <= 0 || limit > feedMaxLength {
		limit = feedMaxLength
	}

	raw, err := cmd.LRange(ctx, dbKeyActivityFeed(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	events := make([]*models.ActivityEvent, 0, len(raw))
	for _, item := range raw {
		var event models.ActivityEvent
		if err := msgpack.Unmarshal([]byte(item), &event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, nil
}

// SetLeaderboardScore overwrites the member score with the user's current
// total; Award always knows the fresh value so ZAdd beats ZIncrBy here
// (re-running an update is then idempotent).
func SetLeaderboardScore(ctx context.Context, cmd redis.Cmdable, item *models.LeaderboardItem) error {
	return cmd.ZAdd(ctx, dbKeyPointsLeaderboard(), redis.Z{
		Score:  item.Score,
		Member: fmt.Sprintf("%d", item.UserID),
	}).Err()
}

func GetLeaderboardTop(ctx context.Context, cmd redis.Cmdable, limit int) ([]*models.LeaderboardItem, error) {
	entries, err := cmd.ZRevRangeWithScores(ctx, dbKeyPointsLeaderboard(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*models.LeaderboardItem, 0, len(entries))
	for _, entry := range entries {
		var userID int64
		if _, err := fmt.Sscanf(fmt.Sprint(entry.Member), "%d", &userID); err != nil {
			continue
		}
		items = append(items, &models.LeaderboardItem{UserID: userID, Score: entry.Score})
	}

	return items, nil
}

func GetLeaderboardRank(ctx context.Context, cmd redis.Cmdable, userID int64) (int64, error) {
	rank, err := cmd.ZRevRank(ctx, dbKeyPointsLeaderboard(), fmt.Sprintf("%d", userID)).Result()
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}
