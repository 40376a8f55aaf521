package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_username").Unique().IfNotExists().Column("username").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_email").Unique().IfNotExists().Column("email").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindUserByID(ctx context.Context, db bun.IDB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *bun.DB, user *models.User) (*models.User, error) {
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EditUser updates mutable profile fields only; point totals move through
// IncrementTotalPoints exclusively.
func EditUser(ctx context.Context, db *bun.DB, user *models.User) (*models.User, error) {
	_, err := db.NewUpdate().Model(user).
		Column("photo_url", "language_code", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsersByPoints returns every user ordered by stored total, highest
// first. Used to re-project the leaderboard sorted set.
func ListUsersByPoints(ctx context.Context, db bun.IDB) ([]*models.User, error) {
	var users []*models.User
	err := db.NewSelect().Model(&users).
		OrderExpr("total_points DESC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// IncrementTotalPoints applies an atomic delta and returns the new total.
// Never read-modify-write: votes, reviews and quiz answers all hit this row
// concurrently.
func IncrementTotalPoints(ctx context.Context, db bun.IDB, userID int64, amount int) (int, error) {
	var total int
	err := db.NewUpdate().Model((*models.User)(nil)).
		Set("total_points = total_points + ?", amount).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Returning("total_points").
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func SetUserLevel(ctx context.Context, db bun.IDB, userID int64, level models.Level) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("level = ?", level).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}
