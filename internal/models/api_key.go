package models

import (
	"time"

	"github.com/google/uuid"
)

// APIKey represents an issued API key for the analyze endpoint
type APIKey struct {
	ID           uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id" validate:"required,uuid4"`
	Key          string     `db:"api_key" json:"api_key" validate:"required"`
	Name         string     `db:"name" json:"name"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	LastUsed     *time.Time `db:"last_used" json:"last_used"`
	Active       bool       `db:"active" json:"active"`
	RequestCount int        `db:"request_count" json:"request_count"`
}

// MaskedKey returns the key with its middle hidden for list views
func (k *APIKey) MaskedKey() string {
	if len(k.Key) <= 12 {
		return k.Key
	}
	return k.Key[:8] + "..." + k.Key[len(k.Key)-4:]
}
