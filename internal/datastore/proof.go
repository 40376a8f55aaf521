package datastore

import (
	"context"
	"time"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableProof(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Proof)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// exactly one attempt per (user, challenge)
	_, err = db.NewCreateIndex().Model((*models.Proof)(nil)).Index("index_proof_user_challenge").Unique().IfNotExists().Column("user_id", "challenge_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Proof)(nil)).Index("index_proof_status").IfNotExists().Column("status").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertProof creates the proof row. inserted == false means a proof already
// exists for this (user, challenge); the caller surfaces DuplicateProof.
func InsertProof(ctx context.Context, db bun.IDB, proof *models.Proof) (bool, error) {
	res, err := db.NewInsert().Model(proof).
		On("CONFLICT (user_id, challenge_id) DO NOTHING").
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

func GetProof(ctx context.Context, db bun.IDB, proofID int64) (*models.Proof, error) {
	var proof models.Proof
	err := db.NewSelect().Model(&proof).Where("id = ?", proofID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

// ReviewProof settles a proof exactly once. The status guard makes the
// decision first-writer-wins: a second reviewer gets zero rows affected and
// no side effects run.
func ReviewProof(ctx context.Context, db bun.IDB, proofID int64, status models.ProofStatus, reviewerID int64, reason *string, reviewedAt time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.Proof)(nil)).
		Set("status = ?", status).
		Set("rejection_reason = ?", reason).
		Set("reviewed_by = ?", reviewerID).
		Set("reviewed_at = ?", reviewedAt).
		Set("updated_at = current_timestamp").
		Where("id = ?", proofID).
		Where("status = ?", models.ProofPending).
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

func ListProofsByStatus(ctx context.Context, db bun.IDB, status models.ProofStatus, limit int) ([]*models.Proof, error) {
	var proofs []*models.Proof
	err := db.NewSelect().Model(&proofs).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return proofs, nil
}

func ListProofsByUser(ctx context.Context, db bun.IDB, userID int64) ([]*models.Proof, error) {
	var proofs []*models.Proof
	err := db.NewSelect().Model(&proofs).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return proofs, nil
}

func IncrementProofVotes(ctx context.Context, db bun.IDB, proofID int64) error {
	_, err := db.NewUpdate().Model((*models.Proof)(nil)).
		Set("total_votes = total_votes + 1").
		Set("updated_at = current_timestamp").
		Where("id = ?", proofID).
		Exec(ctx)
	return err
}

// ListProofsMissingLog returns proofs with no paired proof_log row, the input
// of the reconcile job.
func ListProofsMissingLog(ctx context.Context, db bun.IDB, limit int) ([]*models.Proof, error) {
	var proofs []*models.Proof
	err := db.NewSelect().Model(&proofs).
		Join("LEFT JOIN proof_log AS pl ON pl.original_proof_id = proof.id").
		Where("pl.id IS NULL").
		Order("proof.created_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return proofs, nil
}

func ListAllProofs(ctx context.Context, db bun.IDB) ([]*models.Proof, error) {
	var proofs []*models.Proof
	err := db.NewSelect().Model(&proofs).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return proofs, nil
}
