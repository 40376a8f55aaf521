package datastore

import (
	"context"
	"time"

	"ecospin/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePendingChallenge(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PendingChallenge)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PendingChallenge)(nil)).Index("index_pending_challenge_user_spin").Unique().IfNotExists().Column("user_id", "daily_spin_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PendingChallenge)(nil)).Index("index_pending_challenge_status").IfNotExists().Column("status").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertPendingChallenge creates the acceptance row idempotently: a repeated
// accept for the same spin hits the unique index and converges instead of
// racing.
func InsertPendingChallenge(ctx context.Context, db bun.IDB, pending *models.PendingChallenge) (bool, error) {
	res, err := db.NewInsert().Model(pending).
		On("CONFLICT (user_id, daily_spin_id) DO NOTHING").
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

func GetPendingChallengeBySpin(ctx context.Context, db bun.IDB, userID int64, dailySpinID int64) (*models.PendingChallenge, error) {
	var pending models.PendingChallenge
	err := db.NewSelect().Model(&pending).
		Where("user_id = ?", userID).
		Where("daily_spin_id = ?", dailySpinID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

func GetPendingChallengeByID(ctx context.Context, db bun.IDB, pendingID int64) (*models.PendingChallenge, error) {
	var pending models.PendingChallenge
	err := db.NewSelect().Model(&pending).Where("id = ?", pendingID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// GetOpenPendingChallenge finds the non-terminal acceptance row for
// (user, challenge), the unit of work a proof submission attaches to.
func GetOpenPendingChallenge(ctx context.Context, db bun.IDB, userID int64, challengeID int64) (*models.PendingChallenge, error) {
	var pending models.PendingChallenge
	err := db.NewSelect().Model(&pending).
		Where("user_id = ?", userID).
		Where("challenge_id = ?", challengeID).
		Where("status IN (?)", bun.In([]models.PendingChallengeStatus{
			models.PendingChallengePending,
			models.PendingChallengeProofSubmitted,
		})).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

func ListPendingChallengesByUser(ctx context.Context, db bun.IDB, userID int64) ([]*models.PendingChallenge, error) {
	var pendings []*models.PendingChallenge
	err := db.NewSelect().Model(&pendings).
		Where("user_id = ?", userID).
		Where("status IN (?)", bun.In([]models.PendingChallengeStatus{
			models.PendingChallengePending,
			models.PendingChallengeProofSubmitted,
		})).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return pendings, nil
}

// TransitionPendingChallenge performs a compare-and-set status move. Zero
// rows affected means the row was not in `from` anymore; the caller turns
// that into an invalid-transition error.
func TransitionPendingChallenge(ctx context.Context, db bun.IDB, pendingID int64, from, to models.PendingChallengeStatus) (bool, error) {
	res, err := db.NewUpdate().Model((*models.PendingChallenge)(nil)).
		Set("status = ?", to).
		Set("updated_at = current_timestamp").
		Where("id = ?", pendingID).
		Where("status = ?", from).
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

// AttachProof moves PENDING -> PROOF_SUBMITTED and records the proof
// reference in one conditional update.
func AttachProof(ctx context.Context, db bun.IDB, pendingID int64, proofID int64) (bool, error) {
	res, err := db.NewUpdate().Model((*models.PendingChallenge)(nil)).
		Set("status = ?", models.PendingChallengeProofSubmitted).
		Set("proof_id = ?", proofID).
		Set("updated_at = current_timestamp").
		Where("id = ?", pendingID).
		Where("status = ?", models.PendingChallengePending).
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

// DeleteStalePendingChallenges sweeps only PENDING rows older than the
// cutoff. Rows with a submitted proof awaiting review are never deleted,
// however old: review lag must not destroy work in progress.
func DeleteStalePendingChallenges(ctx context.Context, db *bun.DB, cutoff time.Time) (int64, error) {
	res, err := db.NewDelete().Model((*models.PendingChallenge)(nil)).
		Where("status = ?", models.PendingChallengePending).
		Where("created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
