package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Level is derived from TotalPoints, never mutated on its own.
type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
	LevelExpert       Level = "EXPERT"
)

// LevelForPoints maps a cumulative point total to its level. Thresholds:
// 0 / 1000 / 5000 / 10000.
func LevelForPoints(points int) Level {
	switch {
	case points >= 10000:
		return LevelExpert
	case points >= 5000:
		return LevelAdvanced
	case points >= 1000:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

type User struct {
	bun.BaseModel `bun:"table:user"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Username      string    `bun:"username" json:"username"`
	Email         string    `bun:"email" json:"email"`
	Role          string    `bun:"role" json:"role"`
	TotalPoints   int       `bun:"total_points" json:"total_points"`
	Level         Level     `bun:"level" json:"level"`
	LanguageCode  string    `bun:"language_code" json:"language_code"`
	PhotoURL      string    `bun:"photo_url" json:"photo_url"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`

	IsNewUser bool  `bun:"-" json:"is_new_user"`
	Rank      int64 `bun:"-" json:"rank,omitempty"`
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}

// UserFromAuth only use in middleware
type UserFromAuth struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	LanguageCode string `json:"language_code"`
	PhotoURL     string `json:"photo_url"`
}
