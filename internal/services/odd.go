package services

import (
	"context"

	"ecospin/internal/datastore"
	"ecospin/internal/models"
	"ecospin/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceODD struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceODD(container *do.Injector) (*ServiceODD, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceODD{container, postgresDB, cache}, nil
}

func (service *ServiceODD) GetActiveODDs(ctx context.Context) ([]*models.ODD, error) {
	callback := func() ([]*models.ODD, error) {
		return datastore.GetActiveODDs(ctx, service.postgresDB)
	}

	return caching.UseCache(ctx, service.cache, DBKeyActiveODDs(), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceODD) GetODD(ctx context.Context, oddID int) (*models.ODD, error) {
	callback := func() (*models.ODD, error) {
		return datastore.GetODD(ctx, service.postgresDB, oddID)
	}

	return caching.UseCache(ctx, service.cache, DBKeyODD(oddID), CACHE_TTL_15_MINS, callback)
}

func (service *ServiceODD) UpdateWeight(ctx context.Context, oddID int, weight int) error {
	if weight < 0 {
		return errorx.Wrap(ErrConfiguration, errorx.Validation)
	}

	err := datastore.UpdateODDWeight(ctx, service.postgresDB, oddID, weight)
	if err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyActiveODDs())
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyODD(oddID))
	return nil
}

// chooserForODDs builds a weighted chooser over the catalog; P(odd) is
// weight/Σweights. Zero total weight is a configuration error, never a
// division by zero downstream.
func chooserForODDs(odds []*models.ODD) (*ServiceGacha[*models.ODD], error) {
	choices := make([]weightedrand.Choice[*models.ODD, int], 0, len(odds))
	total := 0
	for _, odd := range odds {
		if odd.Weight <= 0 {
			continue
		}
		total += odd.Weight
		choices = append(choices, weightedrand.NewChoice(odd, odd.Weight))
	}

	if total == 0 {
		return nil, errorx.Wrap(ErrConfiguration, errorx.Service)
	}

	return NewServiceGacha(choices)
}

// PickODD selects a goal with probability proportional to its weight.
func (service *ServiceODD) PickODD(ctx context.Context) (*models.ODD, error) {
	odds, err := service.GetActiveODDs(ctx)
	if err != nil {
		return nil, err
	}

	gacha, err := chooserForODDs(odds)
	if err != nil {
		return nil, err
	}

	return gacha.Pick(), nil
}
