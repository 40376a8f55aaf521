package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableDailySpin(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.DailySpin)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// the one-spin-per-day invariant lives here, not in application code
	_, err = db.NewCreateIndex().Model((*models.DailySpin)(nil)).Index("index_daily_spin_user_date").Unique().IfNotExists().Column("user_id", "spin_date").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertDailySpin records a spin. A concurrent or repeated spin for the same
// (user, day) hits the unique index and inserts nothing; the caller treats
// inserted == false as "already spun today". Silent overwrite would let a
// user re-roll.
func InsertDailySpin(ctx context.Context, db bun.IDB, spin *models.DailySpin) (bool, error) {
	res, err := db.NewInsert().Model(spin).
		On("CONFLICT (user_id, spin_date) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func GetDailySpin(ctx context.Context, db bun.IDB, userID int64, spinDate string) (*models.DailySpin, error) {
	var spin models.DailySpin
	err := db.NewSelect().Model(&spin).
		Where("user_id = ?", userID).
		Where("spin_date = ?", spinDate).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &spin, nil
}

// CompleteQuizSpin marks a quiz spin answered. The is_completed guard closes
// the double-click race: only the first answer flips the row.
func CompleteQuizSpin(ctx context.Context, db bun.IDB, spinID int64, correct bool, points int) (bool, error) {
	res, err := db.NewUpdate().Model((*models.DailySpin)(nil)).
		Set("is_completed = true").
		Set("is_quiz_correct = ?", correct).
		Set("points_awarded = ?", points).
		Set("updated_at = current_timestamp").
		Where("id = ?", spinID).
		Where("is_completed = false").
		Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func SetChallengeAccepted(ctx context.Context, db bun.IDB, spinID int64, accepted bool) error {
	_, err := db.NewUpdate().Model((*models.DailySpin)(nil)).
		Set("challenge_accepted = ?", accepted).
		Set("updated_at = current_timestamp").
		Where("id = ?", spinID).
		Exec(ctx)
	return err
}

func CompleteChallengeSpin(ctx context.Context, db bun.IDB, spinID int64, points int) error {
	_, err := db.NewUpdate().Model((*models.DailySpin)(nil)).
		Set("is_completed = true").
		Set("points_awarded = ?", points).
		Set("updated_at = current_timestamp").
		Where("id = ?", spinID).
		Exec(ctx)
	return err
}

// DeleteStaleChallengeSpins removes unaccepted challenge spins strictly older
// than keepDate (YYYY-MM-DD). Same-day rows are never touched.
func DeleteStaleChallengeSpins(ctx context.Context, db *bun.DB, keepDate string) (int64, error) {
	res, err := db.NewDelete().Model((*models.DailySpin)(nil)).
		Where("scenario_type = ?", models.ScenarioChallenge).
		Where("challenge_accepted = false").
		Where("spin_date < ?", keepDate).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
