package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/yourusername/sportology/internal/config"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 10)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestPasswordTruncationAt72Bytes(t *testing.T) {
	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long, 10)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	// Inputs identical in their first 72 bytes verify against the same hash.
	if !VerifyPassword(strings.Repeat("a", 72)+"bbbb", hash) {
		t.Fatal("expected truncated password to verify")
	}
	if VerifyPassword(strings.Repeat("a", 71), hash) {
		t.Fatal("expected shorter password to fail")
	}
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.AuthConfig{
		JWTSecret:    "0123456789abcdef0123456789abcdef",
		TokenTTLDays: 7,
	})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestJWTManager(t)

	token, err := m.GenerateToken("user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	email, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if email != "user@example.com" {
		t.Errorf("subject = %q", email)
	}
}

func TestVerifyTokenRejectsGarbageAndWrongSecret(t *testing.T) {
	m := newTestJWTManager(t)

	if _, err := m.VerifyToken("not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}

	other, err := NewJWTManager(&config.AuthConfig{
		JWTSecret:    "ffffffffffffffffffffffffffffffff",
		TokenTTLDays: 7,
	})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	token, err := other.GenerateToken("user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.VerifyToken(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	m := newTestJWTManager(t)
	m.ttl = -time.Hour

	token, err := m.GenerateToken("user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.VerifyToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager(&config.AuthConfig{TokenTTLDays: 7}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerateAPIKey(t *testing.T) {
	k1, err := GenerateAPIKey("sn_")
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	k2, err := GenerateAPIKey("sn_")
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}

	if !strings.HasPrefix(k1, "sn_") {
		t.Errorf("missing prefix: %q", k1)
	}
	if k1 == k2 {
		t.Error("expected unique keys")
	}
	if len(k1) < 3+43 { // prefix + 32 bytes base64url
		t.Errorf("key too short: %q", k1)
	}
}
