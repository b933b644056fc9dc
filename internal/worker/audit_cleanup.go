package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/pkg/logger"
)

// AuditCleanupWorker prunes audit log rows past the retention window.
type AuditCleanupWorker struct {
	repo            repository.AuditRepository
	retentionDays   int
	cleanupInterval time.Duration
	logger          *logger.Logger
}

func NewAuditCleanupWorker(repo repository.AuditRepository, retentionDays int, cleanupInterval time.Duration, logger *logger.Logger) *AuditCleanupWorker {
	return &AuditCleanupWorker{
		repo:            repo,
		retentionDays:   retentionDays,
		cleanupInterval: cleanupInterval,
		logger:          logger,
	}
}

func (w *AuditCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				w.logger.Error(err, "failed to clean up audit logs")
			}
		}
	}
}

func (w *AuditCleanupWorker) cleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -w.retentionDays)

	rows, err := w.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete audit logs: %w", err)
	}

	w.logger.Info("cleaned up audit logs", "deleted", rows, "cutoff", cutoff.Format(time.RFC3339))
	return nil
}
