package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableChallenge(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Challenge)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Challenge)(nil)).Index("index_challenge_odd_active").IfNotExists().Column("odd_id", "active").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetChallenge(ctx context.Context, db bun.IDB, challengeID int64) (*models.Challenge, error) {
	var challenge models.Challenge
	err := db.NewSelect().Model(&challenge).Where("id = ?", challengeID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// GetRandomActiveChallenge samples one active challenge for the ODD
// uniformly.
func GetRandomActiveChallenge(ctx context.Context, db bun.IDB, oddID int) (*models.Challenge, error) {
	var challenge models.Challenge
	err := db.NewSelect().Model(&challenge).
		Where("odd_id = ?", oddID).
		Where("active = true").
		OrderExpr("random()").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func IncrementCompletionCount(ctx context.Context, db bun.IDB, challengeID int64) error {
	_, err := db.NewUpdate().Model((*models.Challenge)(nil)).
		Set("completion_count = completion_count + 1").
		Set("updated_at = current_timestamp").
		Where("id = ?", challengeID).
		Exec(ctx)
	return err
}
