package datastore

import (
	"context"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableVote(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Vote)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// one vote per voter per proof
	_, err = db.NewCreateIndex().Model((*models.Vote)(nil)).Index("index_vote_proof_voter").Unique().IfNotExists().Column("proof_id", "voter_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertVote records a community vote; inserted == false means this voter
// already voted on this proof.
func InsertVote(ctx context.Context, db bun.IDB, vote *models.Vote) (bool, error) {
	res, err := db.NewInsert().Model(vote).
		On("CONFLICT (proof_id, voter_id) DO NOTHING").
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
