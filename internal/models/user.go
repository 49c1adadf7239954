package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Email        string    `db:"email" json:"email" validate:"required,email"`
	PasswordHash string    `db:"password_hash" json:"-" validate:"required"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
