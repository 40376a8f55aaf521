package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Vote is one community vote on a proof. One per (proof, voter), self-voting
// forbidden at the service layer.
type Vote struct {
	bun.BaseModel `bun:"table:vote"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	ProofID       int64     `bun:"proof_id" json:"proof_id"`
	VoterID       int64     `bun:"voter_id" json:"voter_id"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
