package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecospin/internal/datastore"
	"ecospin/internal/models"
	"ecospin/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceChallenge tracks the acceptance lifecycle of challenge spins:
// PENDING -> PROOF_SUBMITTED -> VERIFIED | REJECTED, or PENDING -> DECLINED.
type ServiceChallenge struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache

	serviceSpin     *ServiceSpin
	serviceActivity *ServiceActivity
}

func NewServiceChallenge(container *do.Injector) (*ServiceChallenge, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceSpin, err := do.Invoke[*ServiceSpin](container)
	if err != nil {
		return nil, err
	}

	serviceActivity, err := do.Invoke[*ServiceActivity](container)
	if err != nil {
		return nil, err
	}

	return &ServiceChallenge{container, postgresDB, cache, serviceSpin, serviceActivity}, nil
}

func (service *ServiceChallenge) todaysChallengeSpin(ctx context.Context, user *models.User) (*models.DailySpin, error) {
	spin, err := service.serviceSpin.TodaysSpin(ctx, user)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(ErrNoActiveChallenge, errorx.Validation)
	}
	if err != nil {
		return nil, err
	}

	if spin.ScenarioType != models.ScenarioChallenge || spin.ChallengeID == nil {
		return nil, errorx.Wrap(ErrNoActiveChallenge, errorx.Validation)
	}

	return spin, nil
}

// Accept turns today's challenge spin into a tracked pending unit of work.
// Re-acceptance returns the existing row unchanged: the unique
// (user, daily_spin) index makes concurrent accepts converge.
func (service *ServiceChallenge) Accept(ctx context.Context, user *models.User) (*models.PendingChallenge, error) {
	spin, err := service.todaysChallengeSpin(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pending := &models.PendingChallenge{
		UserID:      user.ID,
		ChallengeID: *spin.ChallengeID,
		DailySpinID: spin.ID,
		Status:      models.PendingChallengePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	inserted, err := datastore.InsertPendingChallenge(ctx, service.postgresDB, pending)
	if err != nil {
		return nil, err
	}

	if !inserted {
		return datastore.GetPendingChallengeBySpin(ctx, service.postgresDB, user.ID, spin.ID)
	}

	if err := datastore.SetChallengeAccepted(ctx, service.postgresDB, spin.ID, true); err != nil {
		return nil, err
	}

	service.serviceActivity.Record(ctx, user.ID, models.ActivityChallengeDone,
		fmt.Sprintf("%s accepted a challenge for ODD %d", user.Username, spin.ODDID))

	return pending, nil
}

// Decline ends the lifecycle before any proof exists. Only PENDING rows can
// be declined; DECLINED is terminal.
func (service *ServiceChallenge) Decline(ctx context.Context, user *models.User) (*models.PendingChallenge, error) {
	spin, err := service.todaysChallengeSpin(ctx, user)
	if err != nil {
		return nil, err
	}

	pending, err := datastore.GetPendingChallengeBySpin(ctx, service.postgresDB, user.ID, spin.ID)
	if err == sql.ErrNoRows {
		// never accepted; record the decline so the spin is settled
		pending = &models.PendingChallenge{
			UserID:      user.ID,
			ChallengeID: *spin.ChallengeID,
			DailySpinID: spin.ID,
			Status:      models.PendingChallengePending,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if _, err := datastore.InsertPendingChallenge(ctx, service.postgresDB, pending); err != nil {
			return nil, err
		}
		pending, err = datastore.GetPendingChallengeBySpin(ctx, service.postgresDB, user.ID, spin.ID)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !pending.Status.CanTransition(models.PendingChallengeDeclined) {
		return nil, errorx.Wrap(ErrInvalidTransition, errorx.Validation)
	}

	moved, err := datastore.TransitionPendingChallenge(ctx, service.postgresDB, pending.ID, models.PendingChallengePending, models.PendingChallengeDeclined)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, errorx.Wrap(ErrInvalidTransition, errorx.Validation)
	}

	pending.Status = models.PendingChallengeDeclined
	return pending, nil
}

func (service *ServiceChallenge) GetChallenge(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	callback := func() (*models.Challenge, error) {
		return datastore.GetChallenge(ctx, service.postgresDB, challengeID)
	}

	challenge, err := caching.UseCache(ctx, service.cache, DBKeyChallenge(challengeID), CACHE_TTL_15_MINS, callback)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(fmt.Errorf("challenge not found"), errorx.NotExist)
	}
	return challenge, err
}
