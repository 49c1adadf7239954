package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/sportology/internal/models"
)

type contextKey string

const (
	userContextKey   contextKey = "user"
	apiKeyContextKey contextKey = "api_key"
)

// requireJWT authenticates dashboard-style calls via a bearer token
// and stores the resolved user on the request context.
func (s *Server) requireJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		email, err := s.jwt.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := s.repos.Users.GetByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "user not found")
				return
			}
			s.logger.WithError(err).Error("Failed to resolve token user")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAPIKey authenticates programmatic calls via the X-API-Key
// header, rejects revoked keys, and records key usage.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawKey := r.Header.Get("X-API-Key")
		if rawKey == "" {
			writeError(w, http.StatusUnauthorized, "missing X-API-Key header")
			return
		}

		key, err := s.repos.APIKeys.GetByKey(r.Context(), rawKey)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, models.ErrKeyInactive.Error())
				return
			}
			s.logger.WithError(err).Error("Failed to look up API key")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !key.Active {
			writeError(w, http.StatusUnauthorized, models.ErrKeyInactive.Error())
			return
		}

		user, err := s.repos.Users.GetByID(r.Context(), key.UserID)
		if err != nil {
			s.logger.WithError(err).Error("Failed to resolve API key owner")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := s.repos.APIKeys.TouchUsage(r.Context(), key.ID, time.Now().UTC()); err != nil {
			s.logger.WithError(err).Warn("Failed to record API key usage")
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, apiKeyContextKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func apiKeyFromContext(ctx context.Context) *models.APIKey {
	key, _ := ctx.Value(apiKeyContextKey).(*models.APIKey)
	return key
}

// clientIP prefers the RealIP middleware's rewrite of RemoteAddr and
// falls back to the raw address when it has no port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
