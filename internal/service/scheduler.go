package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// CleanupStore is the persistence surface the scheduler needs
type CleanupStore interface {
	CleanupOldRecords(ctx context.Context, retentionDays int) error
}

// Scheduler periodically prunes stored messages and processed events past
// the retention window
type Scheduler struct {
	store         CleanupStore
	retentionDays int
	interval      time.Duration
	logger        *logrus.Logger
	stopCh        chan struct{}
}

func NewScheduler(store CleanupStore, retentionDays int, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		store:         store,
		retentionDays: retentionDays,
		interval:      interval,
		logger:        logger,
		stopCh:        make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Starting cleanup scheduler")

	s.runCleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context cancelled, stopping")
			return
		case <-s.stopCh:
			s.logger.Info("Scheduler stop signal received, stopping")
			return
		case <-ticker.C:
			s.runCleanup(ctx)
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopCh)
}

func (s *Scheduler) runCleanup(ctx context.Context) {
	s.logger.WithField("retentionDays", s.retentionDays).Info("Running scheduled cleanup")

	if err := s.store.CleanupOldRecords(ctx, s.retentionDays); err != nil {
		s.logger.WithError(err).Error("Scheduled cleanup failed")
		return
	}
	s.logger.Debug("Scheduled cleanup completed")
}
