package services

import (
	"context"
	"log"
	"time"

	"ecospin/internal/datastore"
	"ecospin/internal/datastore/redis_store"
	"ecospin/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceActivity is the side-channel: it records feed entries and pushes
// realtime events. It is a consumer of state transitions, never a gate —
// failures are logged and the parent operation proceeds.
type ServiceActivity struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB

	serviceConfig *ServiceConfig
}

func NewServiceActivity(container *do.Injector) (*ServiceActivity, error) {
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

	return &ServiceActivity{container, redisDB, postgresDB, serviceConfig}, nil
}

func (service *ServiceActivity) Record(ctx context.Context, userID int64, kind string, message string) {
	now := time.Now()

	err := datastore.InsertActivity(ctx, service.postgresDB, &models.Activity{
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
	})
	if err != nil {
		log.Println("activity: insert:", err)
	}

	err = redis_store.PushActivity(ctx, service.redisDB, &models.ActivityEvent{
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
	})
	if err != nil {
		log.Println("activity: push:", err)
	}
}

func (service *ServiceActivity) Feed(ctx context.Context, limit int) ([]*models.ActivityEvent, error) {
	if limit <= 0 {
		limit, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_ACTIVITY_FEED_LIMIT, DEFAULT_FEED_LIMIT)
	}
	return redis_store.GetActivityFeed(ctx, service.redisDB, limit)
}

func (service *ServiceActivity) History(ctx context.Context, limit int) ([]*models.Activity, error) {
	return datastore.ListRecentActivities(ctx, service.postgresDB, limit)
}
