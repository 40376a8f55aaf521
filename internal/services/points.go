package services

import (
	"context"
	"database/sql"
	"log"

	"ecospin/internal/datastore"
	"ecospin/internal/datastore/redis_store"
	"ecospin/internal/models"
	"ecospin/internal/pkg/caching"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServicePoints is the single code path for point mutations. Quiz answers,
// proof approvals and votes all land here, so the totals stay summable
// against the point_event trace.
type ServicePoints struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServicePoints(container *do.Injector) (*ServicePoints, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServicePoints{container, redisDB, postgresDB, cache}, nil
}

// AwardTx applies one point delta inside the caller's transaction: atomic
// increment, level recomputed from the returned total, event appended.
// Returns the new total.
func (service *ServicePoints) AwardTx(ctx context.Context, tx bun.IDB, userID int64, amount int, reason models.PointReason, ref int64) (int, error) {
	total, err := datastore.IncrementTotalPoints(ctx, tx, userID, amount)
	if err != nil {
		return 0, err
	}

	err = datastore.SetUserLevel(ctx, tx, userID, models.LevelForPoints(total))
	if err != nil {
		return 0, err
	}

	err = datastore.InsertPointEvent(ctx, tx, &models.PointEvent{
		UserID: userID,
		Amount: amount,
		Reason: reason,
		Ref:    ref,
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

// Award wraps AwardTx in its own transaction and refreshes the derived
// read models (cache, leaderboard) afterwards.
func (service *ServicePoints) Award(ctx context.Context, userID int64, amount int, reason models.PointReason, ref int64) (int, error) {
	var total int
	err := service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		total, err = service.AwardTx(ctx, tx, userID, amount, reason, ref)
		return err
	})
	if err != nil {
		return 0, err
	}

	service.Refresh(ctx, userID, total)
	return total, nil
}

// Refresh pushes the committed total into the cache and leaderboard. Both
// are derived data; failures are logged and swallowed.
func (service *ServicePoints) Refresh(ctx context.Context, userID int64, total int) {
	err := service.cache.Delete(ctx, DBKeyUser(userID))
	if err != nil {
		log.Println("points: cache delete:", err)
	}

	err = redis_store.SetLeaderboardScore(ctx, service.redisDB, &models.LeaderboardItem{
		UserID: userID,
		Score:  float64(total),
	})
	if err != nil {
		log.Println("points: leaderboard update:", err)
	}
}

type PointAudit struct {
	Stored   int                  `json:"stored"`
	Replayed int                  `json:"replayed"`
	Events   []*models.PointEvent `json:"events"`
}

// Audit re-sums the event trace for one user; replayed must equal the stored
// total. The trace itself ships along so a mismatch can be diagnosed from the
// response.
func (service *ServicePoints) Audit(ctx context.Context, userID int64) (*PointAudit, error) {
	user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, err
	}

	replayed, err := datastore.SumPointsByUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, err
	}

	events, err := datastore.ListPointEvents(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, err
	}

	return &PointAudit{
		Stored:   user.TotalPoints,
		Replayed: replayed,
		Events:   events,
	}, nil
}
