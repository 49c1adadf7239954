// Package scheduler runs the nightly retention jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sportology/internal/config"
	"github.com/yourusername/sportology/internal/repository"
)

const jobTimeout = 10 * time.Minute

// Scheduler prunes aged usage logs and expired demo counters on a
// cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	usageLogs repository.UsageLogRepository
	demoUsage repository.DemoUsageRepository
	retention config.RetentionConfig
	logger    *logrus.Logger

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// New creates a scheduler over the retention configuration
func New(
	usageLogs repository.UsageLogRepository,
	demoUsage repository.DemoUsageRepository,
	retention config.RetentionConfig,
	logger *logrus.Logger,
) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		usageLogs: usageLogs,
		demoUsage: demoUsage,
		retention: retention,
		logger:    logger,
		jobIDs:    make([]cron.EntryID, 0),
	}
}

// ScheduleRetention registers the pruning job on the configured cron
// expression
func (s *Scheduler) ScheduleRetention() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(s.retention.CronSchedule, s.runRetention)
	if err != nil {
		return fmt.Errorf("failed to add retention job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", s.retention.CronSchedule).Info("Scheduled retention job")

	return nil
}

// runRetention prunes both tables; each half logs its own failure so
// one broken delete does not hide the other.
func (s *Scheduler) runRetention() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -s.retention.UsageLogDays)
	deleted, err := s.usageLogs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.WithError(err).Error("Failed to prune usage logs")
	} else {
		s.logger.WithFields(logrus.Fields{
			"deleted": deleted,
			"cutoff":  cutoff.Format("2006-01-02"),
		}).Info("Pruned usage logs")
	}

	expired, err := s.demoUsage.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		s.logger.WithError(err).Error("Failed to prune demo counters")
	} else {
		s.logger.WithField("deleted", expired).Info("Pruned expired demo counters")
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	next := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}
	return next
}
