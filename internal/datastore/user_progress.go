package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserProgress(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserProgress)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserProgress)(nil)).Index("index_user_progress_user_odd").Unique().IfNotExists().Column("user_id", "odd_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// BumpUserProgress upserts the per-ODD aggregate: first approval creates the
// row, later ones increment it atomically.
func BumpUserProgress(ctx context.Context, db bun.IDB, userID int64, oddID int, points int) error {
	progress := &models.UserProgress{
		UserID:              userID,
		ODDID:               oddID,
		CompletedChallenges: 1,
		Points:              points,
	}

	_, err := db.NewInsert().Model(progress).
		On("CONFLICT (user_id, odd_id) DO UPDATE").
		Set("completed_challenges = user_progress.completed_challenges + 1").
		Set("points = user_progress.points + EXCLUDED.points").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	return err
}

func ListUserProgress(ctx context.Context, db bun.IDB, userID int64) ([]*models.UserProgress, error) {
	var progress []*models.UserProgress
	err := db.NewSelect().Model(&progress).
		Where("user_id = ?", userID).
		Order("odd_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return progress, nil
}
