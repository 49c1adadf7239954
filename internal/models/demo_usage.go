package models

import (
	"time"

	"github.com/google/uuid"
)

// DemoUsage tracks unauthenticated demo calls per client IP
type DemoUsage struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	ClientIP  string    `db:"client_ip" json:"client_ip" validate:"required,max=45"` // IPv6 max length
	Count     int       `db:"count" json:"count"`
	ResetTime time.Time `db:"reset_time" json:"reset_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Expired reports whether the counter window has passed its reset time
func (d *DemoUsage) Expired(now time.Time) bool {
	return now.After(d.ResetTime)
}
