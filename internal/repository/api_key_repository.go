package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/sportology/internal/database"
	"github.com/yourusername/sportology/internal/models"
)

// PostgresAPIKeyRepository implements APIKeyRepository for PostgreSQL
type PostgresAPIKeyRepository struct {
	db *database.DB
}

// NewPostgresAPIKeyRepository creates a new API key repository
func NewPostgresAPIKeyRepository(db *database.DB) APIKeyRepository {
	return &PostgresAPIKeyRepository{db: db}
}

// Create inserts a new API key
func (r *PostgresAPIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	query := `
		INSERT INTO api_keys (id, user_id, api_key, name, created_at, active, request_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		key.ID, key.UserID, key.Key, key.Name, key.CreatedAt, key.Active, key.RequestCount,
	)
	if isUniqueViolation(err) {
		return models.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	return nil
}

// GetByKey retrieves an active API key by its key string
func (r *PostgresAPIKeyRepository) GetByKey(ctx context.Context, key string) (*models.APIKey, error) {
	query := `
		SELECT id, user_id, api_key, name, created_at, last_used, active, request_count
		FROM api_keys
		WHERE api_key = $1 AND active = TRUE
	`

	k := &models.APIKey{}
	err := r.db.GetPool().QueryRow(ctx, query, key).Scan(
		&k.ID, &k.UserID, &k.Key, &k.Name, &k.CreatedAt, &k.LastUsed, &k.Active, &k.RequestCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}

	return k, nil
}

// ListByUser retrieves all API keys for a user
func (r *PostgresAPIKeyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.APIKey, error) {
	query := `
		SELECT id, user_id, api_key, name, created_at, last_used, active, request_count
		FROM api_keys
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		k := &models.APIKey{}
		err := rows.Scan(&k.ID, &k.UserID, &k.Key, &k.Name, &k.CreatedAt, &k.LastUsed, &k.Active, &k.RequestCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api key: %w", err)
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}

// Delete removes an API key owned by the given user
func (r *PostgresAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM api_keys WHERE id = $1 AND user_id = $2`

	tag, err := r.db.GetPool().Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Revoke deactivates an API key owned by the given user
func (r *PostgresAPIKeyRepository) Revoke(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `UPDATE api_keys SET active = FALSE WHERE id = $1 AND user_id = $2`

	tag, err := r.db.GetPool().Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// TouchUsage bumps the request counter and last-used timestamp
func (r *PostgresAPIKeyRepository) TouchUsage(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	query := `UPDATE api_keys SET last_used = $2, request_count = request_count + 1 WHERE id = $1`

	if _, err := r.db.GetPool().Exec(ctx, query, id, usedAt); err != nil {
		return fmt.Errorf("failed to touch api key usage: %w", err)
	}

	return nil
}
