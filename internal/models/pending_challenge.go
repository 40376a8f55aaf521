package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PendingChallengeStatus string

const (
	PendingChallengePending        PendingChallengeStatus = "PENDING"
	PendingChallengeProofSubmitted PendingChallengeStatus = "PROOF_SUBMITTED"
	PendingChallengeVerified       PendingChallengeStatus = "VERIFIED"
	PendingChallengeRejected       PendingChallengeStatus = "REJECTED"
	PendingChallengeDeclined       PendingChallengeStatus = "DECLINED"
)

// CanTransition encodes the acceptance lifecycle:
//
//	PENDING -> PROOF_SUBMITTED -> VERIFIED | REJECTED
//	PENDING -> DECLINED (terminal)
func (status PendingChallengeStatus) CanTransition(next PendingChallengeStatus) bool {
	switch status {
	case PendingChallengePending:
		return next == PendingChallengeProofSubmitted || next == PendingChallengeDeclined
	case PendingChallengeProofSubmitted:
		return next == PendingChallengeVerified || next == PendingChallengeRejected
	default:
		return false
	}
}

func (status PendingChallengeStatus) Terminal() bool {
	return status == PendingChallengeVerified ||
		status == PendingChallengeRejected ||
		status == PendingChallengeDeclined
}

// ParsePendingChallengeStatus translates legacy mixed-casing forms at the
// boundary into the canonical enum.
func ParsePendingChallengeStatus(raw string) (PendingChallengeStatus, bool) {
	switch PendingChallengeStatus(normalizeStatus(raw)) {
	case PendingChallengePending:
		return PendingChallengePending, true
	case PendingChallengeProofSubmitted:
		return PendingChallengeProofSubmitted, true
	case PendingChallengeVerified:
		return PendingChallengeVerified, true
	case PendingChallengeRejected:
		return PendingChallengeRejected, true
	case PendingChallengeDeclined:
		return PendingChallengeDeclined, true
	}
	return "", false
}

// PendingChallenge is the accepted-challenge work item, created idempotently
// on acceptance and resolved by proof review.
type PendingChallenge struct {
	bun.BaseModel `bun:"table:pending_challenge"`
	ID            int64                  `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64                  `bun:"user_id" json:"user_id"`
	ChallengeID   int64                  `bun:"challenge_id" json:"challenge_id"`
	DailySpinID   int64                  `bun:"daily_spin_id" json:"daily_spin_id"`
	ProofID       *int64                 `bun:"proof_id" json:"proof_id"`
	Status        PendingChallengeStatus `bun:"status" json:"status"`
	CreatedAt     time.Time              `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time              `bun:"updated_at" json:"updated_at"`

	Challenge *Challenge `bun:"-" json:"challenge,omitempty"`
}
