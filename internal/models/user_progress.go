package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserProgress aggregates completed challenges and points per (user, ODD).
// Updated only alongside a proof approval.
type UserProgress struct {
	bun.BaseModel       `bun:"table:user_progress"`
	ID                  int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID              int64     `bun:"user_id" json:"user_id"`
	ODDID               int       `bun:"odd_id" json:"odd_id"`
	CompletedChallenges int       `bun:"completed_challenges" json:"completed_challenges"`
	Points              int       `bun:"points" json:"points"`
	CreatedAt           time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time `bun:"updated_at" json:"updated_at"`
}
