package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sportology/internal/auth"
	"github.com/yourusername/sportology/internal/metrics"
	"github.com/yourusername/sportology/internal/models"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// handleSignup registers an account, issues a default API key, and
// returns a fresh access token.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.Auth.BcryptCost)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repos.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) || errors.Is(err, models.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.logger.WithError(err).Error("Failed to create user")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Every new account starts with a default key so the analyze
	// endpoint works immediately after signup.
	rawKey, err := auth.GenerateAPIKey(s.cfg.Auth.APIKeyPrefix)
	if err == nil {
		key := &models.APIKey{
			ID:        uuid.New(),
			UserID:    user.ID,
			Key:       rawKey,
			Name:      "Default Key",
			CreatedAt: time.Now().UTC(),
			Active:    true,
		}
		err = s.repos.APIKeys.Create(r.Context(), key)
	}
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to issue default API key")
	}

	token, err := s.jwt.GenerateToken(user.Email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign token")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.SignupsTotal.Inc()
	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.repos.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
			return
		}
		s.logger.WithError(err).Error("Failed to look up user")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}

	token, err := s.jwt.GenerateToken(user.Email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign token")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.LoginsTotal.Inc()
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
