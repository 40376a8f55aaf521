package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ODD is a Sustainable Development Goal catalog entry (Objectif de
// Développement Durable). The 17 rows are seeded at migration time and only
// admins touch weight/metadata afterwards.
type ODD struct {
	bun.BaseModel  `bun:"table:odd"`
	ID             int       `bun:"id,pk" json:"id"`
	Slug           string    `bun:"slug" json:"slug"`
	NameFr         string    `bun:"name_fr" json:"name_fr"`
	NameEn         string    `bun:"name_en" json:"name_en"`
	DescriptionFr  string    `bun:"description_fr" json:"description_fr"`
	DescriptionEn  string    `bun:"description_en" json:"description_en"`
	Icon           string    `bun:"icon" json:"icon"`
	Color          string    `bun:"color" json:"color"`
	Weight         int       `bun:"weight" json:"weight"`
	IsClimateFocus bool      `bun:"is_climate_focus" json:"is_climate_focus"`
	Active         bool      `bun:"active" json:"active"`
	CreatedAt      time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at" json:"updated_at"`
}
