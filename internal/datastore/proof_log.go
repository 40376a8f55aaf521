package datastore

import (
	"context"
	"encoding/json"
	"time"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableProofLog(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ProofLog)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// 1:1 with proof; reconcile relies on this to be race-safe
	_, err = db.NewCreateIndex().Model((*models.ProofLog)(nil)).Index("index_proof_log_original_proof").Unique().IfNotExists().Column("original_proof_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertProofLog pairs a log with its proof. The unique index on
// original_proof_id makes concurrent creation (submit path racing the
// reconcile job) converge on a single row.
func InsertProofLog(ctx context.Context, db bun.IDB, log *models.ProofLog) (bool, error) {
	res, err := db.NewInsert().Model(log).
		On("CONFLICT (original_proof_id) DO NOTHING").
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

// SettleProofLog records the review outcome on the paired log and appends the
// action to the jsonb history in place.
func SettleProofLog(ctx context.Context, db bun.IDB, proofID int64, status models.ProofLogStatus, points int, reviewerID int64, reviewedAt time.Time, action models.ProofLogAction) error {
	encoded, err := json.Marshal([]models.ProofLogAction{action})
	if err != nil {
		return err
	}

	_, err = db.NewUpdate().Model((*models.ProofLog)(nil)).
		Set("status = ?", status).
		Set("points_awarded = ?", points).
		Set("reviewed_by = ?", reviewerID).
		Set("reviewed_at = ?", reviewedAt).
		Set("actions = coalesce(actions, '[]'::jsonb) || ?::jsonb", string(encoded)).
		Set("updated_at = current_timestamp").
		Where("original_proof_id = ?", proofID).
		Exec(ctx)
	return err
}

func CountProofLogs(ctx context.Context, db bun.IDB) (int, error) {
	return db.NewSelect().Model((*models.ProofLog)(nil)).Count(ctx)
}
