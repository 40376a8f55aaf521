package services

import (
	"context"
	"database/sql"
	"fmt"

	"ecospin/internal/datastore"
	"ecospin/internal/models"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type QuizAnswer struct {
	Answer int `json:"answer"`
}

type QuizAnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer int    `json:"correct_answer"`
	PointsAwarded int    `json:"points_awarded"`
	Explanation   string `json:"explanation"`
}

type ServiceQuiz struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB

	serviceSpin     *ServiceSpin
	serviceConfig   *ServiceConfig
	servicePoints   *ServicePoints
	serviceActivity *ServiceActivity
}

func NewServiceQuiz(container *do.Injector) (*ServiceQuiz, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceSpin, err := do.Invoke[*ServiceSpin](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	servicePoints, err := do.Invoke[*ServicePoints](container)
	if err != nil {
		return nil, err
	}

	serviceActivity, err := do.Invoke[*ServiceActivity](container)
	if err != nil {
		return nil, err
	}

	return &ServiceQuiz{container, rs, postgresDB, serviceSpin, serviceConfig, servicePoints, serviceActivity}, nil
}

// Answer settles today's quiz spin. The is_completed conditional update is
// the gate: a doubled click awards points at most once.
func (service *ServiceQuiz) Answer(ctx context.Context, user *models.User, payload QuizAnswer) (*QuizAnswerResult, error) {
	if payload.Answer < 0 || payload.Answer > 3 {
		return nil, errorx.Wrap(fmt.Errorf("answer must be between 0 and 3"), errorx.Invalid)
	}

	mutex := service.rs.NewMutex(LockKeyUserQuizAnswer(user.ID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrInvalidTransition, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	spin, err := service.serviceSpin.TodaysSpin(ctx, user)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(ErrNoActiveQuiz, errorx.Validation)
	}
	if err != nil {
		return nil, err
	}

	if spin.ScenarioType != models.ScenarioQuiz || spin.QuizID == nil {
		return nil, errorx.Wrap(ErrNoActiveQuiz, errorx.Validation)
	}
	if spin.IsCompleted {
		return nil, errorx.Wrap(ErrInvalidTransition, errorx.Validation)
	}

	quiz, err := datastore.GetQuiz(ctx, service.postgresDB, *spin.QuizID)
	if err != nil {
		return nil, err
	}

	correct := payload.Answer == quiz.CorrectAnswer
	points := 0
	if correct {
		points = quiz.Points
		if points <= 0 {
			points, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_QUIZ_DEFAULT_POINTS, DEFAULT_QUIZ_POINTS)
		}
	}

	var newTotal int
	err = service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		completed, err := datastore.CompleteQuizSpin(ctx, tx, spin.ID, correct, points)
		if err != nil {
			return err
		}
		if !completed {
			return errorx.Wrap(ErrInvalidTransition, errorx.Validation)
		}

		if correct {
			newTotal, err = service.servicePoints.AwardTx(ctx, tx, user.ID, points, models.PointReasonQuizCorrect, quiz.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if correct {
		service.servicePoints.Refresh(ctx, user.ID, newTotal)
		service.serviceActivity.Record(ctx, user.ID, models.ActivityQuizAnswered,
			fmt.Sprintf("%s answered today's quiz correctly (+%d points)", user.Username, points))
	}

	return &QuizAnswerResult{
		IsCorrect:     correct,
		CorrectAnswer: quiz.CorrectAnswer,
		PointsAwarded: points,
		Explanation:   quiz.ExplanationEn,
	}, nil
}
