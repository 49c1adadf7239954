package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a seeded athlete available for autocomplete
type Player struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Name      string    `db:"name" json:"name" validate:"required,max=100"`
	Sport     string    `db:"sport" json:"sport" validate:"required"`
	Birthdate *string   `db:"birthdate" json:"birthdate"` // YYYY-MM-DD when enrichment found one
	Country   *string   `db:"country" json:"country"`
	Rank      *int      `db:"rank" json:"rank"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasBirthdate reports whether the player can be analyzed directly
func (p *Player) HasBirthdate() bool {
	return p.Birthdate != nil && *p.Birthdate != ""
}
