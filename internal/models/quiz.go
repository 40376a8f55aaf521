package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Quiz struct {
	bun.BaseModel `bun:"table:quiz"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	ODDID         int       `bun:"odd_id" json:"odd_id"`
	QuestionFr    string    `bun:"question_fr" json:"question_fr"`
	QuestionEn    string    `bun:"question_en" json:"question_en"`
	Options       []string  `bun:"options,array" json:"options"`
	CorrectAnswer int       `bun:"correct_answer" json:"-"`
	ExplanationFr string    `bun:"explanation_fr" json:"explanation_fr"`
	ExplanationEn string    `bun:"explanation_en" json:"explanation_en"`
	Points        int       `bun:"points" json:"points"`
	Active        bool      `bun:"active" json:"active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}
