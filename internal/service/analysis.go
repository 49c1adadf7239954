// Package service orchestrates the numerology engine with metering,
// usage accounting, and metrics.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sportology/internal/analysis"
	"github.com/yourusername/sportology/internal/metrics"
	"github.com/yourusername/sportology/internal/models"
	"github.com/yourusername/sportology/internal/ratelimit"
	"github.com/yourusername/sportology/internal/repository"
)

// AnalyzeRequest carries one match analysis call
type AnalyzeRequest struct {
	Player1Name      string `json:"player1_name" validate:"required,min=1,max=100"`
	Player1Birthdate string `json:"player1_birthdate" validate:"required,datetime=2006-01-02"`
	Player2Name      string `json:"player2_name" validate:"required,min=1,max=100"`
	Player2Birthdate string `json:"player2_birthdate" validate:"required,datetime=2006-01-02"`
	MatchDate        string `json:"match_date" validate:"required,datetime=2006-01-02"`
	Sport            string `json:"sport" validate:"required"`
	// Bankroll is optional; when set, the response carries a concrete
	// stake range for the verdict's confidence tier.
	Bankroll string `json:"bankroll,omitempty" validate:"omitempty,numeric"`
}

// AnalyzeResponse is the verdict plus the optional stake suggestion
type AnalyzeResponse struct {
	*analysis.MatchVerdict
	StakeSuggestion *analysis.StakeSuggestion `json:"stake_suggestion,omitempty"`
}

// AnalysisService runs the engine for metered and demo callers
type AnalysisService struct {
	usageLogs repository.UsageLogRepository
	quota     *ratelimit.DailyQuota
	logger    *logrus.Logger
}

// NewAnalysisService creates the analysis orchestrator
func NewAnalysisService(usageLogs repository.UsageLogRepository, quota *ratelimit.DailyQuota, logger *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		usageLogs: usageLogs,
		quota:     quota,
		logger:    logger,
	}
}

// AnalyzeForUser runs one metered analysis for an API-key caller: the
// daily quota is checked first, the engine runs, and the outcome is
// recorded as a usage row either way.
func (s *AnalysisService) AnalyzeForUser(ctx context.Context, userID uuid.UUID, apiKeyID uuid.UUID, req AnalyzeRequest) (*AnalyzeResponse, error) {
	if err := s.quota.Check(ctx, userID); err != nil {
		if errors.Is(err, models.ErrRateLimited) {
			metrics.RateLimitRejectionsTotal.WithLabelValues("free_tier").Inc()
		}
		return nil, err
	}

	resp, err := s.run(req, "api")
	s.logUsage(ctx, userID, &apiKeyID, "/api/v1/analyze-match", err)
	return resp, err
}

// AnalyzeDemo runs one analysis for the unauthenticated demo endpoint.
// The per-IP throttle is the caller's responsibility.
func (s *AnalysisService) AnalyzeDemo(req AnalyzeRequest) (*AnalyzeResponse, error) {
	return s.run(req, "demo")
}

// AnalyzeLive runs one analysis for a websocket session.
func (s *AnalysisService) AnalyzeLive(req AnalyzeRequest) (*AnalyzeResponse, error) {
	return s.run(req, "ws")
}

func (s *AnalysisService) run(req AnalyzeRequest, caller string) (*AnalyzeResponse, error) {
	start := time.Now()
	verdict, err := analysis.AnalyzeMatch(
		req.Player1Name, req.Player1Birthdate,
		req.Player2Name, req.Player2Birthdate,
		req.MatchDate, req.Sport,
	)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AnalysisFailuresTotal.Inc()
		return nil, err
	}
	metrics.AnalysesTotal.WithLabelValues(req.Sport, caller).Inc()

	resp := &AnalyzeResponse{MatchVerdict: verdict}
	if req.Bankroll != "" {
		if bankroll, perr := decimal.NewFromString(req.Bankroll); perr == nil {
			if stake, ok := analysis.SuggestStake(bankroll, verdict.Confidence); ok {
				resp.StakeSuggestion = &stake
			}
		}
	}

	return resp, nil
}

// logUsage records the call outcome; accounting failures are logged
// and swallowed so they never mask the analysis result.
func (s *AnalysisService) logUsage(ctx context.Context, userID uuid.UUID, apiKeyID *uuid.UUID, endpoint string, callErr error) {
	entry := &models.UsageLog{
		ID:        uuid.New(),
		UserID:    userID,
		APIKeyID:  apiKeyID,
		Endpoint:  endpoint,
		Timestamp: time.Now().UTC(),
		Success:   callErr == nil,
	}
	if callErr != nil {
		msg := callErr.Error()
		entry.ErrorMessage = &msg
	}

	if err := s.usageLogs.Create(ctx, entry); err != nil {
		s.logger.WithError(err).Warn("Failed to record usage log")
	}
}
