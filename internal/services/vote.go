package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecospin/internal/datastore"
	"ecospin/internal/interfaces"
	"ecospin/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceVote handles community votes on approved proofs. Each vote is worth
// one point to the proof owner, at most once per (proof, voter).
type ServiceVote struct {
	container  *do.Injector
	postgresDB *bun.DB
	limiter    interfaces.Limiter

	serviceConfig *ServiceConfig
	servicePoints *ServicePoints
}

func NewServiceVote(container *do.Injector) (*ServiceVote, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
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

	return &ServiceVote{container, postgresDB, limiter, serviceConfig, servicePoints}, nil
}

// Vote casts one vote for a proof. The unique (proof_id, voter_id) index makes
// retries converge; the point award goes to the proof owner, not the voter.
func (service *ServiceVote) Vote(ctx context.Context, voter *models.User, proofID int64) (*models.Proof, error) {
	perMinute, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_VOTE_LIMIT_PER_MINUTE, DEFAULT_VOTE_LIMIT_PER_MINUTE)
	err := service.limiter.AllowUser(ctx, LimitKeyUserVote(voter.ID), redis_rate.PerMinute(perMinute))
	if err != nil {
		return nil, err
	}

	proof, err := datastore.GetProof(ctx, service.postgresDB, proofID)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(fmt.Errorf("proof not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	if proof.UserID == voter.ID {
		return nil, errorx.Wrap(ErrSelfVote, errorx.Validation)
	}
	if proof.Status != models.ProofApproved {
		return nil, errorx.Wrap(ErrInvalidTransition, errorx.Validation)
	}

	err = service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		inserted, err := datastore.InsertVote(ctx, tx, &models.Vote{
			ProofID:   proofID,
			VoterID:   voter.ID,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		if !inserted {
			return errorx.Wrap(ErrAlreadyVoted, errorx.Validation)
		}

		if err := datastore.IncrementProofVotes(ctx, tx, proofID); err != nil {
			return err
		}

		_, err = service.servicePoints.AwardTx(ctx, tx, proof.UserID, 1, models.PointReasonVoteReceived, proofID)
		return err
	})
	if err != nil {
		return nil, err
	}

	owner, err := datastore.FindUserByID(ctx, service.postgresDB, proof.UserID)
	if err == nil {
		service.servicePoints.Refresh(ctx, owner.ID, owner.TotalPoints)
	}

	proof.TotalVotes++
	return proof, nil
}

// ListForUser returns a user's own proofs, most recent first.
func (service *ServiceVote) ListForUser(ctx context.Context, userID int64) ([]*models.Proof, error) {
	return datastore.ListProofsByUser(ctx, service.postgresDB, userID)
}
