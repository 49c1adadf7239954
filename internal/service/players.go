package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/yourusername/sportology/internal/metrics"
	"github.com/yourusername/sportology/internal/models"
	"github.com/yourusername/sportology/internal/repository"
)

const (
	searchCacheTTL  = 5 * time.Minute
	searchResultCap = 20
	minSearchPrefix = 2
)

// PlayerService serves roster autocomplete with a short-lived
// in-process cache in front of the database.
type PlayerService struct {
	players repository.PlayerRepository
	cache   *cache.Cache
}

// NewPlayerService creates the roster search service
func NewPlayerService(players repository.PlayerRepository) *PlayerService {
	return &PlayerService{
		players: players,
		cache:   cache.New(searchCacheTTL, 10*time.Minute),
	}
}

// Search returns up to searchResultCap players whose name starts with
// prefix, optionally restricted to one sport. Prefixes shorter than
// two characters return an empty slice without touching the database.
func (s *PlayerService) Search(ctx context.Context, sport, prefix string) ([]*models.Player, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < minSearchPrefix {
		return []*models.Player{}, nil
	}

	key := fmt.Sprintf("%s|%s", strings.ToLower(sport), strings.ToLower(prefix))
	if cached, found := s.cache.Get(key); found {
		return cached.([]*models.Player), nil
	}

	start := time.Now()
	results, err := s.players.SearchByName(ctx, sport, prefix, searchResultCap)
	metrics.PlayerSearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	if results == nil {
		results = []*models.Player{}
	}

	s.cache.Set(key, results, cache.DefaultExpiration)
	return results, nil
}
