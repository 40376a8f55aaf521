package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"ecospin/internal/datastore"
	"ecospin/internal/interfaces"
	"ecospin/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type SpinResult struct {
	ODD          *models.ODD         `json:"odd"`
	ScenarioType models.ScenarioType `json:"scenario_type"`
	Quiz         *models.Quiz        `json:"quiz,omitempty"`
	Challenge    *models.Challenge   `json:"challenge,omitempty"`
	CanSpinAgain bool                `json:"can_spin_again"`
	NextSpinTime time.Time           `json:"next_spin_time"`
}

type SpinStatus struct {
	CanSpinToday      bool                       `json:"can_spin_today"`
	TodaysSpin        *models.DailySpin          `json:"todays_spin"`
	PendingChallenges []*models.PendingChallenge `json:"pending_challenges"`
	NextSpinTime      time.Time                  `json:"next_spin_time"`
}

// ServiceSpin owns the daily spin ledger: one spin per user per calendar day,
// enforced by the (user_id, spin_date) unique index at insert time.
type ServiceSpin struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB
	limiter    interfaces.Limiter

	serviceODD      *ServiceODD
	serviceConfig   *ServiceConfig
	serviceActivity *ServiceActivity
}

func NewServiceSpin(container *do.Injector) (*ServiceSpin, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceODD, err := do.Invoke[*ServiceODD](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceActivity, err := do.Invoke[*ServiceActivity](container)
	if err != nil {
		return nil, err
	}

	return &ServiceSpin{container, rs, postgresDB, limiter, serviceODD, serviceConfig, serviceActivity}, nil
}

// scenarioChooser draws QUIZ vs CHALLENGE; quizWeight out of 100.
func scenarioChooser(quizWeight int) (*ServiceGacha[models.ScenarioType], error) {
	if quizWeight < 0 || quizWeight > 100 {
		quizWeight = DEFAULT_SCENARIO_QUIZ_WEIGHT
	}

	return NewServiceGacha([]weightedrand.Choice[models.ScenarioType, int]{
		weightedrand.NewChoice(models.ScenarioQuiz, quizWeight),
		weightedrand.NewChoice(models.ScenarioChallenge, 100-quizWeight),
	})
}

// drawItem resolves the drawn scenario to a concrete quiz or challenge,
// falling back to the other scenario type when the first has no active item
// for this ODD.
func (service *ServiceSpin) drawItem(ctx context.Context, oddID int, scenario models.ScenarioType) (models.ScenarioType, *models.Quiz, *models.Challenge, error) {
	order := []models.ScenarioType{scenario}
	if scenario == models.ScenarioQuiz {
		order = append(order, models.ScenarioChallenge)
	} else {
		order = append(order, models.ScenarioQuiz)
	}

	for _, candidate := range order {
		switch candidate {
		case models.ScenarioQuiz:
			quiz, err := datastore.GetRandomActiveQuiz(ctx, service.postgresDB, oddID)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return "", nil, nil, err
			}
			return models.ScenarioQuiz, quiz, nil, nil
		case models.ScenarioChallenge:
			challenge, err := datastore.GetRandomActiveChallenge(ctx, service.postgresDB, oddID)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return "", nil, nil, err
			}
			return models.ScenarioChallenge, nil, challenge, nil
		}
	}

	if scenario == models.ScenarioQuiz {
		return "", nil, nil, errorx.Wrap(ErrNoActiveQuiz, errorx.NotExist)
	}
	return "", nil, nil, errorx.Wrap(ErrNoActiveChallenge, errorx.NotExist)
}

func (service *ServiceSpin) Spin(ctx context.Context, user *models.User) (*SpinResult, error) {
	// shields the lock and the insert path from hammering; the real
	// once-per-day guarantee is the unique index below
	err := service.limiter.AllowUser(ctx, LimitKeyUserSpin(user.ID), redis_rate.PerMinute(10))
	if err != nil {
		return nil, err
	}

	mutex := service.rs.NewMutex(LockKeyUserSpin(user.ID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrSpinLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	now := time.Now()
	loc := service.serviceConfig.ReferenceLocation(ctx)
	spinDate := models.SpinDateIn(now, loc)

	odd, err := service.serviceODD.PickODD(ctx)
	if err != nil {
		return nil, err
	}

	quizWeight, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SCENARIO_QUIZ_WEIGHT, DEFAULT_SCENARIO_QUIZ_WEIGHT)
	gacha, err := scenarioChooser(quizWeight)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	scenario, quiz, challenge, err := service.drawItem(ctx, odd.ID, gacha.Pick())
	if err != nil {
		return nil, err
	}

	spin := &models.DailySpin{
		UserID:       user.ID,
		SpinDate:     spinDate,
		ODDID:        odd.ID,
		ScenarioType: scenario,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if quiz != nil {
		spin.QuizID = &quiz.ID
	}
	if challenge != nil {
		spin.ChallengeID = &challenge.ID
	}

	// the unique index is the real gate; two concurrent requests both reach
	// this insert and exactly one wins
	inserted, err := datastore.InsertDailySpin(ctx, service.postgresDB, spin)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, errorx.Wrap(ErrAlreadySpunToday, errorx.RateLimiting)
	}

	service.serviceActivity.Record(ctx, user.ID, models.ActivitySpin,
		fmt.Sprintf("%s spun the wheel and drew %s for ODD %d", user.Username, scenario, odd.ID))

	return &SpinResult{
		ODD:          odd,
		ScenarioType: scenario,
		Quiz:         quiz,
		Challenge:    challenge,
		CanSpinAgain: false,
		NextSpinTime: models.NextSpinTime(now, loc),
	}, nil
}

func (service *ServiceSpin) Status(ctx context.Context, user *models.User) (*SpinStatus, error) {
	now := time.Now()
	loc := service.serviceConfig.ReferenceLocation(ctx)
	spinDate := models.SpinDateIn(now, loc)

	status := &SpinStatus{
		CanSpinToday: true,
		NextSpinTime: models.NextSpinTime(now, loc),
	}

	spin, err := datastore.GetDailySpin(ctx, service.postgresDB, user.ID, spinDate)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if spin != nil {
		status.CanSpinToday = false
		if err := service.decorateSpin(ctx, spin); err != nil {
			return nil, err
		}
		status.TodaysSpin = spin
	}

	pendings, err := datastore.ListPendingChallengesByUser(ctx, service.postgresDB, user.ID)
	if err != nil {
		return nil, err
	}
	status.PendingChallenges = pendings

	return status, nil
}

// TodaysSpin loads the current-day spin row or sql.ErrNoRows.
func (service *ServiceSpin) TodaysSpin(ctx context.Context, user *models.User) (*models.DailySpin, error) {
	loc := service.serviceConfig.ReferenceLocation(ctx)
	return datastore.GetDailySpin(ctx, service.postgresDB, user.ID, models.SpinDateIn(time.Now(), loc))
}

func (service *ServiceSpin) decorateSpin(ctx context.Context, spin *models.DailySpin) error {
	odd, err := service.serviceODD.GetODD(ctx, spin.ODDID)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	spin.ODD = odd

	if spin.QuizID != nil {
		quiz, err := datastore.GetQuiz(ctx, service.postgresDB, *spin.QuizID)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		spin.Quiz = quiz
	}
	if spin.ChallengeID != nil {
		challenge, err := datastore.GetChallenge(ctx, service.postgresDB, *spin.ChallengeID)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		spin.Challenge = challenge
	}

	return nil
}

// Sweep is the midnight retention job. It deletes unaccepted challenge spins
// from prior days and PENDING acceptance rows past the grace period. Rows in
// PROOF_SUBMITTED survive regardless of age.
func (service *ServiceSpin) Sweep(ctx context.Context) error {
	now := time.Now()
	loc := service.serviceConfig.ReferenceLocation(ctx)
	today := models.SpinDateIn(now, loc)

	spins, err := datastore.DeleteStaleChallengeSpins(ctx, service.postgresDB, today)
	if err != nil {
		return err
	}

	graceDays, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_PENDING_GRACE_DAYS, DEFAULT_PENDING_GRACE_DAYS)
	if graceDays < 1 {
		graceDays = 1
	}
	local := now.In(loc)
	startOfToday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	cutoff := startOfToday.AddDate(0, 0, -(graceDays - 1))

	pendings, err := datastore.DeleteStalePendingChallenges(ctx, service.postgresDB, cutoff)
	if err != nil {
		return err
	}

	log.Printf("sweep: removed %d stale spins, %d stale pending challenges\n", spins, pendings)
	return nil
}
