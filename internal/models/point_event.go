package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PointReason string

const (
	PointReasonQuizCorrect   PointReason = "QUIZ_CORRECT"
	PointReasonProofApproved PointReason = "PROOF_APPROVED"
	PointReasonVoteReceived  PointReason = "VOTE_RECEIVED"
)

// PointEvent is the append-only trace of every point mutation. Summing the
// amounts per user must always reproduce User.TotalPoints.
type PointEvent struct {
	bun.BaseModel `bun:"table:point_event"`
	ID            int64       `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64       `bun:"user_id" json:"user_id"`
	Amount        int         `bun:"amount" json:"amount"`
	Reason        PointReason `bun:"reason" json:"reason"`
	Ref           int64       `bun:"ref" json:"ref"`
	CreatedAt     time.Time   `bun:"created_at,default:current_timestamp" json:"created_at"`
}
