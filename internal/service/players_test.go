package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yourusername/sportology/internal/models"
)

type stubPlayers struct {
	calls   int
	results []*models.Player
}

func (s *stubPlayers) Upsert(ctx context.Context, player *models.Player) error { return nil }

func (s *stubPlayers) SearchByName(ctx context.Context, sport, prefix string, limit int) ([]*models.Player, error) {
	s.calls++
	return s.results, nil
}

func (s *stubPlayers) GetByNameAndSport(ctx context.Context, name, sport string) (*models.Player, error) {
	return nil, models.ErrNotFound
}

func TestSearchShortPrefixSkipsDatabase(t *testing.T) {
	repo := &stubPlayers{}
	svc := NewPlayerService(repo)

	results, err := svc.Search(context.Background(), "tennis", "a")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
	if repo.calls != 0 {
		t.Errorf("short prefix must not hit the database, got %d calls", repo.calls)
	}
}

func TestSearchCachesRepeatedQueries(t *testing.T) {
	repo := &stubPlayers{results: []*models.Player{
		{ID: uuid.New(), Name: "Novak Okovic", Sport: "tennis"},
	}}
	svc := NewPlayerService(repo)

	for i := 0; i < 3; i++ {
		results, err := svc.Search(context.Background(), "tennis", "Nov")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
	}
	if repo.calls != 1 {
		t.Errorf("expected 1 database call, got %d", repo.calls)
	}

	// Different sport is a different cache key.
	if _, err := svc.Search(context.Background(), "boxing", "Nov"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if repo.calls != 2 {
		t.Errorf("expected 2 database calls, got %d", repo.calls)
	}
}

func TestSearchNormalizesWhitespace(t *testing.T) {
	repo := &stubPlayers{}
	svc := NewPlayerService(repo)

	results, err := svc.Search(context.Background(), "tennis", "   ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 || repo.calls != 0 {
		t.Error("whitespace-only prefix should behave like an empty one")
	}
}
