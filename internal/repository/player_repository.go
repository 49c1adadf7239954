package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/sportology/internal/database"
	"github.com/yourusername/sportology/internal/models"
)

// PostgresPlayerRepository implements PlayerRepository for PostgreSQL
type PostgresPlayerRepository struct {
	db *database.DB
}

// NewPostgresPlayerRepository creates a new player repository
func NewPostgresPlayerRepository(db *database.DB) PlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// Upsert inserts a player or refreshes an existing (name, sport) row
func (r *PostgresPlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, sport, birthdate, country, rank, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (name, sport) DO UPDATE SET
			birthdate = COALESCE(EXCLUDED.birthdate, players.birthdate),
			country = COALESCE(EXCLUDED.country, players.country),
			rank = EXCLUDED.rank,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		player.ID, player.Name, player.Sport, player.Birthdate, player.Country, player.Rank, player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	return nil
}

// SearchByName finds players by case-insensitive name prefix. An
// empty sport searches across all sports.
func (r *PostgresPlayerRepository) SearchByName(ctx context.Context, sport, prefix string, limit int) ([]*models.Player, error) {
	query := `
		SELECT id, name, sport, birthdate, country, rank, created_at, updated_at
		FROM players
		WHERE ($1 = '' OR sport = $1) AND name ILIKE $2 || '%'
		ORDER BY rank NULLS LAST, name
		LIMIT $3
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		p := &models.Player{}
		err := rows.Scan(&p.ID, &p.Name, &p.Sport, &p.Birthdate, &p.Country, &p.Rank, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

// GetByNameAndSport retrieves a single player by exact name and sport
func (r *PostgresPlayerRepository) GetByNameAndSport(ctx context.Context, name, sport string) (*models.Player, error) {
	query := `
		SELECT id, name, sport, birthdate, country, rank, created_at, updated_at
		FROM players
		WHERE name = $1 AND sport = $2
	`

	p := &models.Player{}
	err := r.db.GetPool().QueryRow(ctx, query, name, sport).Scan(
		&p.ID, &p.Name, &p.Sport, &p.Birthdate, &p.Country, &p.Rank, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return p, nil
}
