package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sportology/internal/database"
	"github.com/yourusername/sportology/internal/models"
)

// PostgresUsageLogRepository implements UsageLogRepository for PostgreSQL
type PostgresUsageLogRepository struct {
	db *database.DB
}

// NewPostgresUsageLogRepository creates a new usage log repository
func NewPostgresUsageLogRepository(db *database.DB) UsageLogRepository {
	return &PostgresUsageLogRepository{db: db}
}

// Create inserts a usage log entry
func (r *PostgresUsageLogRepository) Create(ctx context.Context, log *models.UsageLog) error {
	query := `
		INSERT INTO usage_logs (id, user_id, api_key_id, endpoint, timestamp, success, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		log.ID, log.UserID, log.APIKeyID, log.Endpoint, log.Timestamp, log.Success, log.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to create usage log: %w", err)
	}

	return nil
}

// CountSuccessfulSince counts a user's successful calls since the given time
func (r *PostgresUsageLogRepository) CountSuccessfulSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM usage_logs
		WHERE user_id = $1 AND timestamp >= $2 AND success = TRUE
	`

	var count int
	if err := r.db.GetPool().QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count usage logs: %w", err)
	}

	return count, nil
}

// DeleteOlderThan prunes usage logs past the retention cutoff
func (r *PostgresUsageLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM usage_logs WHERE timestamp < $1`

	tag, err := r.db.GetPool().Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune usage logs: %w", err)
	}

	return tag.RowsAffected(), nil
}
