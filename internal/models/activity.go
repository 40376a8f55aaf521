package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	ActivitySpin          = "SPIN"
	ActivityQuizAnswered  = "QUIZ_ANSWERED"
	ActivityChallengeDone = "CHALLENGE_DONE"
	ActivityProofReviewed = "PROOF_REVIEWED"
	ActivityVote          = "VOTE"
)

// Activity is a human-readable feed entry. Persisted for history and pushed
// to the redis feed for realtime consumers.
type Activity struct {
	bun.BaseModel `bun:"table:activity"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	Kind          string    `bun:"kind" json:"kind"`
	Message       string    `bun:"message" json:"message"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// ActivityEvent is the realtime wire form pushed onto the redis feed.
type ActivityEvent struct {
	UserID    int64     `json:"user_id" msgpack:"user_id"`
	Kind      string    `json:"kind" msgpack:"kind"`
	Message   string    `json:"message" msgpack:"message"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}

type Config struct {
	bun.BaseModel `bun:"table:config"`
	Key           string `bun:"key,pk" json:"key"`
	Value         string `bun:"value" json:"value"`
}

type LeaderboardItem struct {
	UserID int64   `json:"user_id"`
	Score  float64 `json:"score"`
}
