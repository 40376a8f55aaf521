package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePointEvent(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PointEvent)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PointEvent)(nil)).Index("index_point_event_user").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertPointEvent(ctx context.Context, db bun.IDB, event *models.PointEvent) error {
	_, err := db.NewInsert().Model(event).Exec(ctx)
	return err
}

// SumPointsByUser replays the event trace; the result must always equal
// User.TotalPoints.
func SumPointsByUser(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	var sum int
	err := db.NewSelect().Model((*models.PointEvent)(nil)).
		ColumnExpr("coalesce(sum(amount), 0)").
		Where("user_id = ?", userID).
		Scan(ctx, &sum)
	if err != nil {
		return 0, err
	}
	return sum, nil
}

func ListPointEvents(ctx context.Context, db bun.IDB, userID int64) ([]*models.PointEvent, error) {
	var events []*models.PointEvent
	err := db.NewSelect().Model(&events).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func ListAllPointEvents(ctx context.Context, db bun.IDB) ([]*models.PointEvent, error) {
	var events []*models.PointEvent
	err := db.NewSelect().Model(&events).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}
