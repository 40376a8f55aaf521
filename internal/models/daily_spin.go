package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ScenarioType string

const (
	ScenarioQuiz      ScenarioType = "QUIZ"
	ScenarioChallenge ScenarioType = "CHALLENGE"
)

// DailySpin is the once-per-day wheel draw. Uniqueness on (user_id, spin_date)
// is enforced by the database, not by a read-then-write check.
type DailySpin struct {
	bun.BaseModel     `bun:"table:daily_spin"`
	ID                int64        `bun:"id,pk,autoincrement" json:"id"`
	UserID            int64        `bun:"user_id" json:"user_id"`
	SpinDate          string       `bun:"spin_date" json:"spin_date"` // YYYY-MM-DD in the reference timezone
	ODDID             int          `bun:"odd_id" json:"odd_id"`
	ScenarioType      ScenarioType `bun:"scenario_type" json:"scenario_type"`
	QuizID            *int64       `bun:"quiz_id" json:"quiz_id"`
	ChallengeID       *int64       `bun:"challenge_id" json:"challenge_id"`
	IsCompleted       bool         `bun:"is_completed" json:"is_completed"`
	IsQuizCorrect     *bool        `bun:"is_quiz_correct" json:"is_quiz_correct"`
	ChallengeAccepted bool         `bun:"challenge_accepted" json:"challenge_accepted"`
	PointsAwarded     int          `bun:"points_awarded" json:"points_awarded"`
	CreatedAt         time.Time    `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time    `bun:"updated_at" json:"updated_at"`

	ODD       *ODD       `bun:"-" json:"odd,omitempty"`
	Quiz      *Quiz      `bun:"-" json:"quiz,omitempty"`
	Challenge *Challenge `bun:"-" json:"challenge,omitempty"`
}

// SpinDateIn formats the calendar-day key for t in the reference timezone.
func SpinDateIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// NextSpinTime is the upcoming midnight in the reference timezone.
func NextSpinTime(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
}
