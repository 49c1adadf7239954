// Package ratelimit meters analyze calls for free-tier accounts and
// unauthenticated demo clients.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sportology/internal/models"
	"github.com/yourusername/sportology/internal/repository"
)

// DailyQuota enforces the free-tier daily call limit by counting
// successful usage rows since local midnight UTC.
type DailyQuota struct {
	usageLogs repository.UsageLogRepository
	limit     int
}

// NewDailyQuota creates a quota checker over the usage log repository
func NewDailyQuota(usageLogs repository.UsageLogRepository, limit int) *DailyQuota {
	return &DailyQuota{usageLogs: usageLogs, limit: limit}
}

// Check returns models.ErrRateLimited when the user has exhausted
// today's allowance
func (q *DailyQuota) Check(ctx context.Context, userID uuid.UUID) error {
	midnight := startOfDayUTC(time.Now())

	count, err := q.usageLogs.CountSuccessfulSince(ctx, userID, midnight)
	if err != nil {
		return fmt.Errorf("failed to check daily quota: %w", err)
	}
	if count >= q.limit {
		return fmt.Errorf("%w: free tier allows %d requests per day", models.ErrRateLimited, q.limit)
	}

	return nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
