package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sportology/internal/database"
	"github.com/yourusername/sportology/internal/models"
)

// PostgresDemoUsageRepository implements DemoUsageRepository for PostgreSQL
type PostgresDemoUsageRepository struct {
	db *database.DB
}

// NewPostgresDemoUsageRepository creates a new demo usage repository
func NewPostgresDemoUsageRepository(db *database.DB) DemoUsageRepository {
	return &PostgresDemoUsageRepository{db: db}
}

// Increment bumps the counter for a client IP, starting a fresh window
// when none exists or the previous one expired
func (r *PostgresDemoUsageRepository) Increment(ctx context.Context, clientIP string, resetAfter time.Duration) (*models.DemoUsage, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO demo_usage (id, client_ip, count, reset_time, created_at, updated_at)
		VALUES ($1, $2, 1, $3, $4, $4)
		ON CONFLICT (client_ip) DO UPDATE SET
			count = CASE WHEN demo_usage.reset_time < $4 THEN 1 ELSE demo_usage.count + 1 END,
			reset_time = CASE WHEN demo_usage.reset_time < $4 THEN $3 ELSE demo_usage.reset_time END,
			updated_at = $4
		RETURNING id, client_ip, count, reset_time, created_at, updated_at
	`

	usage := &models.DemoUsage{}
	err := r.db.GetPool().QueryRow(ctx, query, uuid.New(), clientIP, now.Add(resetAfter), now).Scan(
		&usage.ID, &usage.ClientIP, &usage.Count, &usage.ResetTime, &usage.CreatedAt, &usage.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to increment demo usage: %w", err)
	}

	return usage, nil
}

// DeleteExpired removes counters whose reset window has passed
func (r *PostgresDemoUsageRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM demo_usage WHERE reset_time < $1`

	tag, err := r.db.GetPool().Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired demo usage: %w", err)
	}

	return tag.RowsAffected(), nil
}
