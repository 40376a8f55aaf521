package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ProofLogStatus string

const (
	ProofLogSubmitted ProofLogStatus = "SUBMITTED"
	ProofLogApproved  ProofLogStatus = "APPROVED"
	ProofLogRejected  ProofLogStatus = "REJECTED"
)

// ProofLogAction is one entry of the append-only actions log.
type ProofLogAction struct {
	Action    string    `json:"action"`
	ActorID   int64     `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// ProofLog shadows a Proof 1:1 (unique index on original_proof_id) and is
// written in the same transaction as every Proof mutation. Reconstructed rows
// come from the reconcile job and are flagged as such.
type ProofLog struct {
	bun.BaseModel   `bun:"table:proof_log"`
	ID              int64            `bun:"id,pk,autoincrement" json:"id"`
	OriginalProofID int64            `bun:"original_proof_id" json:"original_proof_id"`
	UserID          int64            `bun:"user_id" json:"user_id"`
	ChallengeID     int64            `bun:"challenge_id" json:"challenge_id"`
	Status          ProofLogStatus   `bun:"status" json:"status"`
	PointsAwarded   int              `bun:"points_awarded" json:"points_awarded"`
	ReviewedBy      *int64           `bun:"reviewed_by" json:"reviewed_by"`
	ReviewedAt      *time.Time       `bun:"reviewed_at" json:"reviewed_at"`
	Reconstructed   bool             `bun:"reconstructed" json:"reconstructed"`
	Actions         []ProofLogAction `bun:"actions,type:jsonb" json:"actions"`
	CreatedAt       time.Time        `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time        `bun:"updated_at" json:"updated_at"`
}

// LogStatusForProof maps a reviewed Proof status onto its log counterpart.
func LogStatusForProof(status ProofStatus) ProofLogStatus {
	switch status {
	case ProofApproved:
		return ProofLogApproved
	case ProofRejected:
		return ProofLogRejected
	default:
		return ProofLogSubmitted
	}
}
