package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableQuiz(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Quiz)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Quiz)(nil)).Index("index_quiz_odd_active").IfNotExists().Column("odd_id", "active").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetQuiz(ctx context.Context, db bun.IDB, quizID int64) (*models.Quiz, error) {
	var quiz models.Quiz
	err := db.NewSelect().Model(&quiz).Where("id = ?", quizID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func GetRandomActiveQuiz(ctx context.Context, db bun.IDB, oddID int) (*models.Quiz, error) {
	var quiz models.Quiz
	err := db.NewSelect().Model(&quiz).
		Where("odd_id = ?", oddID).
		Where("active = true").
		OrderExpr("random()").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}
