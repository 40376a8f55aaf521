package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableActivity(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Activity)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Activity)(nil)).Index("index_activity_created_at").IfNotExists().Column("created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertActivity(ctx context.Context, db bun.IDB, activity *models.Activity) error {
	_, err := db.NewInsert().Model(activity).Exec(ctx)
	return err
}

func ListRecentActivities(ctx context.Context, db bun.IDB, limit int) ([]*models.Activity, error) {
	var activities []*models.Activity
	err := db.NewSelect().Model(&activities).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return activities, nil
}
