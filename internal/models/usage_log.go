package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog records one call against a metered endpoint
type UsageLog struct {
	ID           uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id" validate:"required,uuid4"`
	APIKeyID     *uuid.UUID `db:"api_key_id" json:"api_key_id"`
	Endpoint     string     `db:"endpoint" json:"endpoint" validate:"required"`
	Timestamp    time.Time  `db:"timestamp" json:"timestamp"`
	Success      bool       `db:"success" json:"success"`
	ErrorMessage *string    `db:"error_message" json:"error_message"`
}
