package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"ecospin/internal/datastore"
	"ecospin/internal/models"
	"ecospin/internal/pkg/mediastore"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceProof is the single source of truth for "was this proof approved".
// Every Proof write happens in the same transaction as its ProofLog twin;
// Reconcile exists for rows that predate that guarantee, not as a crutch for
// new ones.
type ServiceProof struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB
	media      *mediastore.MediaStore

	serviceConfig   *ServiceConfig
	servicePoints   *ServicePoints
	serviceActivity *ServiceActivity
}

func NewServiceProof(container *do.Injector) (*ServiceProof, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	media, err := do.Invoke[*mediastore.MediaStore](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	servicePoints, err := do.Invoke[*ServicePoints](container)
	if err != nil {
		return nil, err
	}

	serviceActivity, err := do.Invoke[*ServiceActivity](container)
	if err != nil {
		return nil, err
	}

	return &ServiceProof{container, rs, postgresDB, media, serviceConfig, servicePoints, serviceActivity}, nil
}

// Submit stores evidence for an accepted challenge. One attempt per
// (user, challenge): a rejected proof does not reopen on the same acceptance
// cycle. Proof, ProofLog and the PENDING -> PROOF_SUBMITTED move commit
// together or not at all.
func (service *ServiceProof) Submit(ctx context.Context, user *models.User, challengeID int64, description string, file *multipart.FileHeader) (*models.Proof, error) {
	mutex := service.rs.NewMutex(LockKeyUserProofSubmit(user.ID, challengeID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrDuplicateProof, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	pending, err := datastore.GetOpenPendingChallenge(ctx, service.postgresDB, user.ID, challengeID)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(ErrInvalidTransition, errorx.Validation)
	}
	if err != nil {
		return nil, err
	}
	if pending.Status != models.PendingChallengePending {
		return nil, errorx.Wrap(ErrInvalidTransition, errorx.Validation)
	}

	var mediaURL *string
	if file != nil && service.media != nil {
		url, err := service.media.UploadProofMedia(ctx, file)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
		mediaURL = &url
	}
	if mediaURL == nil && description == "" {
		return nil, errorx.Wrap(fmt.Errorf("a file or a description is required"), errorx.Invalid)
	}

	now := time.Now()
	proof := &models.Proof{
		UserID:             user.ID,
		ChallengeID:        challengeID,
		PendingChallengeID: pending.ID,
		Description:        description,
		MediaURL:           mediaURL,
		Status:             models.ProofPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		inserted, err := datastore.InsertProof(ctx, tx, proof)
		if err != nil {
			return err
		}
		if !inserted {
			return errorx.Wrap(ErrDuplicateProof, errorx.Validation)
		}

		// the paired log is part of proof creation, never deferred
		_, err = datastore.InsertProofLog(ctx, tx, &models.ProofLog{
			OriginalProofID: proof.ID,
			UserID:          user.ID,
			ChallengeID:     challengeID,
			Status:          models.ProofLogSubmitted,
			Actions: []models.ProofLogAction{{
				Action:    "SUBMITTED",
				ActorID:   user.ID,
				Timestamp: now,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		moved, err := datastore.AttachProof(ctx, tx, pending.ID, proof.ID)
		if err != nil {
			return err
		}
		if !moved {
			return errorx.Wrap(ErrInvalidTransition, errorx.Validation)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return proof, nil
}

// Review settles a proof exactly once. On approval all five side effects
// (user points + level, user progress, challenge counter, proof log, pending
// challenge) commit in the same transaction as the status flip, so a crash
// can never leave points granted without the audit trail.
func (service *ServiceProof) Review(ctx context.Context, reviewer *models.User, proofID int64, statusRaw string, reason *string) (*models.Proof, error) {
	status, ok := models.ParseProofStatus(statusRaw)
	if !ok || status == models.ProofPending {
		return nil, errorx.Wrap(fmt.Errorf("status must be APPROVED or REJECTED"), errorx.Invalid)
	}

	mutex := service.rs.NewMutex(LockKeyProofReview(proofID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrReviewLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	proof, err := datastore.GetProof(ctx, service.postgresDB, proofID)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(fmt.Errorf("proof not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var newTotal, awarded int
	var pointsMoved bool

	err = service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		reviewed, err := datastore.ReviewProof(ctx, tx, proof.ID, status, reviewer.ID, reason, now)
		if err != nil {
			return err
		}
		if !reviewed {
			return errorx.Wrap(ErrAlreadyReviewed, errorx.Validation)
		}

		if status == models.ProofApproved {
			awarded, err = service.resolveChallengePoints(ctx, tx, proof.ChallengeID)
			if err != nil {
				return err
			}

			newTotal, err = service.servicePoints.AwardTx(ctx, tx, proof.UserID, awarded, models.PointReasonProofApproved, proof.ID)
			if err != nil {
				return err
			}
			pointsMoved = true

			challenge, err := datastore.GetChallenge(ctx, tx, proof.ChallengeID)
			if err != nil {
				return err
			}

			err = datastore.BumpUserProgress(ctx, tx, proof.UserID, challenge.ODDID, awarded)
			if err != nil {
				return err
			}

			err = datastore.IncrementCompletionCount(ctx, tx, proof.ChallengeID)
			if err != nil {
				return err
			}
		}

		err = datastore.SettleProofLog(ctx, tx, proof.ID, models.LogStatusForProof(status), awarded, reviewer.ID, now, models.ProofLogAction{
			Action:    string(status),
			ActorID:   reviewer.ID,
			Timestamp: now,
			Note:      derefString(reason),
		})
		if err != nil {
			return err
		}

		target := models.PendingChallengeVerified
		if status == models.ProofRejected {
			target = models.PendingChallengeRejected
		}
		moved, err := datastore.TransitionPendingChallenge(ctx, tx, proof.PendingChallengeID, models.PendingChallengeProofSubmitted, target)
		if err != nil {
			return err
		}
		if !moved {
			// acceptance row swept or already settled; the proof remains
			// authoritative, so log and keep going
			log.Printf("review: pending challenge %d not in PROOF_SUBMITTED for proof %d\n", proof.PendingChallengeID, proof.ID)
		} else if status == models.ProofApproved {
			pending, err := datastore.GetPendingChallengeByID(ctx, tx, proof.PendingChallengeID)
			if err == nil {
				err = datastore.CompleteChallengeSpin(ctx, tx, pending.DailySpinID, awarded)
			}
			if err != nil && err != sql.ErrNoRows {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if pointsMoved {
		service.servicePoints.Refresh(ctx, proof.UserID, newTotal)
	}
	service.serviceActivity.Record(ctx, proof.UserID, models.ActivityProofReviewed,
		fmt.Sprintf("proof %d was %s", proof.ID, status))

	proof.Status = status
	proof.RejectionReason = reason
	proof.ReviewedBy = &reviewer.ID
	proof.ReviewedAt = &now
	return proof, nil
}

// resolveChallengePoints returns the canonical award value. A missing or
// non-numeric stored value falls back to the configured default with a
// warning; it must never silently zero out the award.
func (service *ServiceProof) resolveChallengePoints(ctx context.Context, db bun.IDB, challengeID int64) (int, error) {
	challenge, err := datastore.GetChallenge(ctx, db, challengeID)
	if err != nil {
		return 0, err
	}

	points, ok := challenge.PointValue()
	if !ok {
		points, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_CHALLENGE_FALLBACK_PTS, DEFAULT_CHALLENGE_FALLBACK_PTS)
		log.Printf("review: challenge %d has no usable point value, falling back to %d\n", challengeID, points)
	}

	return points, nil
}

// Reconcile synthesizes the missing log for any unpaired proof. The unique
// index on original_proof_id makes it idempotent and safe to run while
// submissions are in flight.
func (service *ServiceProof) Reconcile(ctx context.Context) (int, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_RECONCILE_BATCH_LIMIT, DEFAULT_RECONCILE_BATCH_LIMIT)

	proofs, err := datastore.ListProofsMissingLog(ctx, service.postgresDB, limit)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, proof := range proofs {
		points := 0
		if proof.Status == models.ProofApproved {
			points, err = service.resolveChallengePoints(ctx, service.postgresDB, proof.ChallengeID)
			if err != nil {
				return repaired, err
			}
		}

		now := time.Now()
		inserted, err := datastore.InsertProofLog(ctx, service.postgresDB, &models.ProofLog{
			OriginalProofID: proof.ID,
			UserID:          proof.UserID,
			ChallengeID:     proof.ChallengeID,
			Status:          models.LogStatusForProof(proof.Status),
			PointsAwarded:   points,
			ReviewedBy:      proof.ReviewedBy,
			ReviewedAt:      proof.ReviewedAt,
			Reconstructed:   true,
			Actions: []models.ProofLogAction{{
				Action:    "RECONSTRUCTED",
				ActorID:   0,
				Timestamp: now,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return repaired, err
		}
		if inserted {
			repaired++
			log.Printf("reconcile: reconstructed proof log for proof %d\n", proof.ID)
		}
	}

	return repaired, nil
}

func (service *ServiceProof) ListByStatus(ctx context.Context, statusRaw string) ([]*models.Proof, error) {
	status, ok := models.ParseProofStatus(statusRaw)
	if !ok {
		return nil, errorx.Wrap(fmt.Errorf("unknown proof status %q", statusRaw), errorx.Invalid)
	}

	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_ADMIN_PROOF_LIST_LIMIT, DEFAULT_ADMIN_PROOF_LIST_LIMIT)
	return datastore.ListProofsByStatus(ctx, service.postgresDB, status, limit)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
