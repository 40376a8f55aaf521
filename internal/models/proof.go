package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type ProofStatus string

const (
	ProofPending  ProofStatus = "PENDING"
	ProofApproved ProofStatus = "APPROVED"
	ProofRejected ProofStatus = "REJECTED"
)

// CanTransition allows exactly one review: PENDING -> APPROVED | REJECTED.
func (status ProofStatus) CanTransition(next ProofStatus) bool {
	return status == ProofPending && (next == ProofApproved || next == ProofRejected)
}

func normalizeStatus(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ParseProofStatus accepts the legacy lowercase/mixed forms the old data
// carried ("approved", "Accepted") and maps them onto the canonical enum.
func ParseProofStatus(raw string) (ProofStatus, bool) {
	switch normalizeStatus(raw) {
	case string(ProofPending):
		return ProofPending, true
	case string(ProofApproved), "ACCEPTED":
		return ProofApproved, true
	case string(ProofRejected), "DECLINED":
		return ProofRejected, true
	}
	return "", false
}

// Proof is the user-submitted evidence for a challenge. One row per
// (user, challenge), enforced by a unique compound index: a rejected proof
// does not get a retry on the same acceptance cycle.
type Proof struct {
	bun.BaseModel      `bun:"table:proof"`
	ID                 int64       `bun:"id,pk,autoincrement" json:"id"`
	UserID             int64       `bun:"user_id" json:"user_id"`
	ChallengeID        int64       `bun:"challenge_id" json:"challenge_id"`
	PendingChallengeID int64       `bun:"pending_challenge_id" json:"pending_challenge_id"`
	Description        string      `bun:"description" json:"description"`
	MediaURL           *string     `bun:"media_url" json:"media_url"`
	Status             ProofStatus `bun:"status" json:"status"`
	RejectionReason    *string     `bun:"rejection_reason" json:"rejection_reason"`
	TotalVotes         int         `bun:"total_votes" json:"total_votes"`
	ReviewedBy         *int64      `bun:"reviewed_by" json:"reviewed_by"`
	ReviewedAt         *time.Time  `bun:"reviewed_at" json:"reviewed_at"`
	CreatedAt          time.Time   `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time   `bun:"updated_at" json:"updated_at"`
}
