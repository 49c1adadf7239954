// Package repository provides PostgreSQL persistence for the Sportology API.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sportology/internal/models"
)

// UserRepository manages registered accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// APIKeyRepository manages issued API keys
type APIKeyRepository interface {
	Create(ctx context.Context, key *models.APIKey) error
	GetByKey(ctx context.Context, key string) (*models.APIKey, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.APIKey, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Revoke(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	TouchUsage(ctx context.Context, id uuid.UUID, usedAt time.Time) error
}

// UsageLogRepository records and counts metered calls
type UsageLogRepository interface {
	Create(ctx context.Context, log *models.UsageLog) error
	CountSuccessfulSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DemoUsageRepository tracks unauthenticated demo calls per client IP
type DemoUsageRepository interface {
	Increment(ctx context.Context, clientIP string, resetAfter time.Duration) (*models.DemoUsage, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PlayerRepository manages the seeded athlete roster
type PlayerRepository interface {
	Upsert(ctx context.Context, player *models.Player) error
	SearchByName(ctx context.Context, sport, prefix string, limit int) ([]*models.Player, error)
	GetByNameAndSport(ctx context.Context, name, sport string) (*models.Player, error)
}

// Repositories aggregates all repository implementations
type Repositories struct {
	Users     UserRepository
	APIKeys   APIKeyRepository
	UsageLogs UsageLogRepository
	DemoUsage DemoUsageRepository
	Players   PlayerRepository
}
