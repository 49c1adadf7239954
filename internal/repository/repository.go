package repository

import "github.com/yourusername/sportology/internal/database"

// NewRepositories wires all PostgreSQL repositories over one pool
func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:     NewPostgresUserRepository(db),
		APIKeys:   NewPostgresAPIKeyRepository(db),
		UsageLogs: NewPostgresUsageLogRepository(db),
		DemoUsage: NewPostgresDemoUsageRepository(db),
		Players:   NewPostgresPlayerRepository(db),
	}
}
