package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/yourusername/sportology/internal/metrics"
	"github.com/yourusername/sportology/internal/models"
	"github.com/yourusername/sportology/internal/numerology"
	"github.com/yourusername/sportology/internal/service"
)

const demoNote = "This is a demo. Sign up for full API access."

// demoResponse decorates the verdict for the unauthenticated endpoint
type demoResponse struct {
	*service.AnalyzeResponse
	Demo bool   `json:"demo"`
	Note string `json:"note"`
}

func (s *Server) bindAnalyzeRequest(r *http.Request) (service.AnalyzeRequest, error) {
	var req service.AnalyzeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		return req, err
	}
	if !s.allowedSports[req.Sport] {
		return req, errors.New("unsupported sport")
	}
	return req, nil
}

// handleAnalyzeMatch is the metered analysis endpoint behind API key
// auth.
func (s *Server) handleAnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	key := apiKeyFromContext(r.Context())
	if user == nil || key == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	req, err := s.bindAnalyzeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.analysis.AnalyzeForUser(r.Context(), user.ID, key.ID, req)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDemoAnalyze is the unauthenticated endpoint with a per-IP
// allowance.
func (s *Server) handleDemoAnalyze(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if err := s.demoLimiter.Allow(ip); err != nil {
		metrics.RateLimitRejectionsTotal.WithLabelValues("demo").Inc()
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	}

	// Write-through so the allowance survives restarts in aggregate
	// and the retention job has rows to prune.
	if _, derr := s.repos.DemoUsage.Increment(r.Context(), ip, 24*time.Hour); derr != nil {
		s.logger.WithError(derr).Warn("Failed to record demo usage")
	}

	req, err := s.bindAnalyzeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.analysis.AnalyzeDemo(req)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, demoResponse{
		AnalyzeResponse: resp,
		Demo:            true,
		Note:            demoNote,
	})
}

func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, numerology.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.WithError(err).Error("Analysis failed")
		writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
	}
}

// handleSearchPlayers serves autocomplete over the seeded roster
func (s *Server) handleSearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	sport := r.URL.Query().Get("sport")
	if sport != "" && !s.allowedSports[sport] {
		writeError(w, http.StatusBadRequest, "unsupported sport")
		return
	}

	players, err := s.players.Search(r.Context(), sport, q)
	if err != nil {
		s.logger.WithError(err).Error("Player search failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}
