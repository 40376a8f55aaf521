package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Challenge struct {
	bun.BaseModel   `bun:"table:challenge"`
	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	ODDID           int       `bun:"odd_id" json:"odd_id"`
	Slug            string    `bun:"slug" json:"slug"`
	TitleFr         string    `bun:"title_fr" json:"title_fr"`
	TitleEn         string    `bun:"title_en" json:"title_en"`
	DescriptionFr   string    `bun:"description_fr" json:"description_fr"`
	DescriptionEn   string    `bun:"description_en" json:"description_en"`
	Points          *int      `bun:"points" json:"points"`
	Difficulty      string    `bun:"difficulty" json:"difficulty"`
	Active          bool      `bun:"active" json:"active"`
	CompletionCount int       `bun:"completion_count" json:"completion_count"`
	CreatedAt       time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at" json:"updated_at"`
}

// PointValue returns the canonical point value of the challenge and whether
// the stored value was usable. Callers fall back to a configured default when
// it is not, a missing value must never zero out an award.
func (challenge *Challenge) PointValue() (int, bool) {
	if challenge.Points == nil || *challenge.Points <= 0 {
		return 0, false
	}
	return *challenge.Points, true
}
