package server

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sportology/internal/auth"
	"github.com/yourusername/sportology/internal/config"
	"github.com/yourusername/sportology/internal/models"
	"github.com/yourusername/sportology/internal/ratelimit"
	"github.com/yourusername/sportology/internal/repository"
	"github.com/yourusername/sportology/internal/service"
)

// In-memory repositories backing handler tests.

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]*models.User)}
}

func (m *memUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.ErrDuplicateKey
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

type memAPIKeys struct {
	mu   sync.Mutex
	keys map[uuid.UUID]*models.APIKey
}

func newMemAPIKeys() *memAPIKeys {
	return &memAPIKeys{keys: make(map[uuid.UUID]*models.APIKey)}
}

func (m *memAPIKeys) Create(ctx context.Context, key *models.APIKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key.ID] = key
	return nil
}

func (m *memAPIKeys) GetByKey(ctx context.Context, raw string) (*models.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.keys {
		if k.Key == raw {
			return k, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memAPIKeys) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.APIKey
	for _, k := range m.keys {
		if k.UserID == userID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *memAPIKeys) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k, ok := m.keys[id]; ok && k.UserID == userID {
		delete(m.keys, id)
		return nil
	}
	return models.ErrNotFound
}

func (m *memAPIKeys) Revoke(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k, ok := m.keys[id]; ok && k.UserID == userID {
		k.Active = false
		return nil
	}
	return models.ErrNotFound
}

func (m *memAPIKeys) TouchUsage(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k, ok := m.keys[id]; ok {
		k.LastUsed = &usedAt
		k.RequestCount++
		return nil
	}
	return models.ErrNotFound
}

type memUsageLogs struct {
	mu      sync.Mutex
	entries []*models.UsageLog
}

func (m *memUsageLogs) Create(ctx context.Context, log *models.UsageLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, log)
	return nil
}

func (m *memUsageLogs) CountSuccessfulSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, e := range m.entries {
		if e.UserID == userID && e.Success && !e.Timestamp.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *memUsageLogs) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type memDemoUsage struct{}

func (memDemoUsage) Increment(ctx context.Context, clientIP string, resetAfter time.Duration) (*models.DemoUsage, error) {
	return &models.DemoUsage{ClientIP: clientIP, Count: 1}, nil
}

func (memDemoUsage) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type memPlayers struct {
	mu      sync.Mutex
	players []*models.Player
}

func (m *memPlayers) Upsert(ctx context.Context, player *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = append(m.players, player)
	return nil
}

func (m *memPlayers) SearchByName(ctx context.Context, sport, prefix string, limit int) ([]*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Player
	for _, p := range m.players {
		if sport != "" && p.Sport != sport {
			continue
		}
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(prefix)) {
			out = append(out, p)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memPlayers) GetByNameAndSport(ctx context.Context, name, sport string) (*models.Player, error) {
	return nil, models.ErrNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "sportology",
			Environment: "development",
			LogLevel:    "error",
		},
		Server: config.ServerConfig{
			Port:                 8080,
			HealthPort:           8081,
			ReadTimeoutSeconds:   5,
			WriteTimeoutSeconds:  5,
			ShutdownGraceSeconds: 5,
			RequestsPerMinute:    10000,
			AllowedSports:        []string{"tennis", "table-tennis", "boxing", "mma", "basketball", "football"},
		},
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret-which-is-long-enough!!",
			TokenTTLDays: 7,
			BcryptCost:   10,
			APIKeyPrefix: "sn_",
		},
		RateLimit: config.RateLimitConfig{
			FreeTierDailyLimit: 10,
			DemoDailyLimit:     3,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

type testEnv struct {
	server    *Server
	repos     *repository.Repositories
	usageLogs *memUsageLogs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	usageLogs := &memUsageLogs{}
	repos := &repository.Repositories{
		Users:     newMemUsers(),
		APIKeys:   newMemAPIKeys(),
		UsageLogs: usageLogs,
		DemoUsage: memDemoUsage{},
		Players:   &memPlayers{},
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Auth)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	quota := ratelimit.NewDailyQuota(usageLogs, cfg.RateLimit.FreeTierDailyLimit)
	analysisService := service.NewAnalysisService(usageLogs, quota, logger)
	playerService := service.NewPlayerService(repos.Players)
	demoLimiter := ratelimit.NewDemoLimiter(cfg.RateLimit.DemoDailyLimit)

	srv := New(cfg, logger, repos, jwtManager, analysisService, playerService, demoLimiter)
	return &testEnv{server: srv, repos: repos, usageLogs: usageLogs}
}

func seedPlayer(t *testing.T, repo *memPlayers, name, sport string) {
	t.Helper()
	player := &models.Player{ID: uuid.New(), Name: name, Sport: sport}
	if err := repo.Upsert(context.Background(), player); err != nil {
		t.Fatalf("failed to seed player: %v", err)
	}
}
