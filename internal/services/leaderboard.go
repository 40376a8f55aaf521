package services

import (
	"context"
	"database/sql"

	"ecospin/internal/datastore"
	"ecospin/internal/datastore/redis_store"
	"ecospin/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type LeaderboardEntry struct {
	Rank        int          `json:"rank"`
	UserID      int64        `json:"user_id"`
	Username    string       `json:"username"`
	Level       models.Level `json:"level"`
	TotalPoints int          `json:"total_points"`
}

// ServiceLeaderboard serves ranking reads off the redis sorted set; Postgres
// totals remain the source of truth and Rebuild re-projects them on demand.
type ServiceLeaderboard struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB

	serviceConfig *ServiceConfig
	serviceUser   *ServiceUser
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, redisDB, postgresDB, serviceConfig, serviceUser}, nil
}

func (service *ServiceLeaderboard) Top(ctx context.Context) ([]*LeaderboardEntry, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, DEFAULT_LEADERBOARD_LIMIT)

	items, err := redis_store.GetLeaderboardTop(ctx, service.redisDB, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(items))
	for i, item := range items {
		entry := &LeaderboardEntry{
			Rank:        i + 1,
			UserID:      item.UserID,
			TotalPoints: int(item.Score),
		}

		user, err := service.serviceUser.FindUserByID(ctx, item.UserID)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if user != nil {
			entry.Username = user.Username
			entry.Level = user.Level
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (service *ServiceLeaderboard) Rank(ctx context.Context, userID int64) (int64, error) {
	rank, err := redis_store.GetLeaderboardRank(ctx, service.redisDB, userID)
	if err == redis.Nil {
		return 0, nil
	}
	return rank, err
}

// Rebuild re-projects every stored total into the sorted set. Run after a
// redis flush or when totals were repaired directly in Postgres.
func (service *ServiceLeaderboard) Rebuild(ctx context.Context) (int, error) {
	users, err := datastore.ListUsersByPoints(ctx, service.postgresDB)
	if err != nil {
		return 0, err
	}

	for _, user := range users {
		err := redis_store.SetLeaderboardScore(ctx, service.redisDB, &models.LeaderboardItem{
			UserID: user.ID,
			Score:  float64(user.TotalPoints),
		})
		if err != nil {
			return 0, err
		}
	}

	return len(users), nil
}
