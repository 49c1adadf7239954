package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/yourusername/sportology/internal/auth"
	"github.com/yourusername/sportology/internal/models"
)

type createKeyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type apiKeyResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	APIKey       string     `json:"api_key"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsed     *time.Time `json:"last_used"`
	Active       bool       `json:"active"`
	RequestCount int        `json:"request_count"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// handleCreateAPIKey issues a new key and returns it unmasked; this
// is the only place the full key is ever shown.
func (s *Server) handleCreateAPIKey(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createKeyRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rawKey, err := auth.GenerateAPIKey(s.cfg.Auth.APIKeyPrefix)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate API key")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	key := &models.APIKey{
		ID:        uuid.New(),
		UserID:    user.ID,
		Key:       rawKey,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
	if err := s.repos.APIKeys.Create(r.Context(), key); err != nil {
		s.logger.WithError(err).Error("Failed to store API key")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, apiKeyResponse{
		ID:           key.ID,
		Name:         key.Name,
		APIKey:       key.Key,
		CreatedAt:    key.CreatedAt,
		LastUsed:     key.LastUsed,
		Active:       key.Active,
		RequestCount: key.RequestCount,
	})
}

// handleListAPIKeys lists the caller's keys with the key material
// masked.
func (s *Server) handleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	keys, err := s.repos.APIKeys.ListByUser(r.Context(), user.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list API keys")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]apiKeyResponse, 0, len(keys))
	for _, key := range keys {
		resp = append(resp, apiKeyResponse{
			ID:           key.ID,
			Name:         key.Name,
			APIKey:       key.MaskedKey(),
			CreatedAt:    key.CreatedAt,
			LastUsed:     key.LastUsed,
			Active:       key.Active,
			RequestCount: key.RequestCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	s.mutateAPIKey(w, r, s.repos.APIKeys.Delete, "API key deleted successfully")
}

func (s *Server) handleRevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	s.mutateAPIKey(w, r, s.repos.APIKeys.Revoke, "API key revoked successfully")
}

// mutateAPIKey runs an owner-scoped key operation identified by the
// keyID path parameter.
func (s *Server) mutateAPIKey(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id, userID uuid.UUID) error,
	successMsg string,
) {
	user := userFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	keyID, err := uuid.Parse(chi.URLParam(r, "keyID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.ErrInvalidID.Error())
		return
	}

	if err := op(r.Context(), keyID, user.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "API key not found")
			return
		}
		s.logger.WithError(err).Error("Failed to update API key")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: successMsg})
}
