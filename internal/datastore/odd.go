package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableODD(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ODD)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ODD)(nil)).Index("index_odd_slug").Unique().IfNotExists().Column("slug").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetActiveODDs(ctx context.Context, db bun.IDB) ([]*models.ODD, error) {
	var odds []*models.ODD
	err := db.NewSelect().Model(&odds).Where("active = true").Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return odds, nil
}

func GetODD(ctx context.Context, db bun.IDB, oddID int) (*models.ODD, error) {
	var odd models.ODD
	err := db.NewSelect().Model(&odd).Where("id = ?", oddID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &odd, nil
}

// SeedODDs inserts the catalog rows, leaving existing entries (and any admin
// weight edits) untouched.
func SeedODDs(ctx context.Context, db *bun.DB, odds []*models.ODD) error {
	_, err := db.NewInsert().Model(&odds).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	return err
}

func UpdateODDWeight(ctx context.Context, db *bun.DB, oddID int, weight int) error {
	_, err := db.NewUpdate().Model((*models.ODD)(nil)).
		Set("weight = ?", weight).
		Set("updated_at = current_timestamp").
		Where("id = ?", oddID).
		Exec(ctx)
	return err
}
