package services

import (
	"context"
	"strconv"
	"time"

	"ecospin/internal/datastore"
	"ecospin/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceConfig struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceConfig(container *do.Injector) (*ServiceConfig, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{container, postgresDB, cache}, nil
}

func (service *ServiceConfig) GetStringConfig(ctx context.Context, key string, defaultValue string) (string, error) {
	callback := func() (string, error) {
		config, err := datastore.GetConfigByKey(ctx, service.postgresDB, key)
		if err != nil {
			return defaultValue, err
		}
		return config.Value, nil
	}

	value, err := caching.UseCache(ctx, service.cache, DBKeyConfig(key), CACHE_TTL_5_MINS, callback)
	if err != nil {
		return defaultValue, err
	}

	return value, nil
}

func (service *ServiceConfig) GetIntConfig(ctx context.Context, key string, defaultValue int) (int, error) {
	callback := func() (int, error) {
		config, err := datastore.GetConfigByKey(ctx, service.postgresDB, key)
		if err != nil {
			return defaultValue, err
		}

		intValue, err := strconv.Atoi(config.Value)
		if err != nil {
			return defaultValue, err
		}

		return intValue, nil
	}

	value, err := caching.UseCache(ctx, service.cache, DBKeyConfig(key), CACHE_TTL_5_MINS, callback)
	if err != nil {
		return defaultValue, err
	}

	return value, nil
}

// Set writes a config value and drops the cached copy so the new value is
// visible within a read, not a TTL.
func (service *ServiceConfig) Set(ctx context.Context, key string, value string) error {
	err := datastore.SetConfig(ctx, service.postgresDB, key, value)
	if err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyConfig(key))
	return nil
}

// ReferenceLocation loads the timezone the calendar-day boundary is computed
// in. A bad value falls back to UTC rather than breaking every spin.
func (service *ServiceConfig) ReferenceLocation(ctx context.Context) *time.Location {
	name, _ := service.GetStringConfig(ctx, CONFIG_REFERENCE_TIMEZONE, DEFAULT_REFERENCE_TIMEZONE)
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
