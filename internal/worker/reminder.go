package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/smilecare/clinic-api/internal/email"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/pkg/logger"
	"github.com/smilecare/clinic-api/pkg/metrics"
)

// ReminderWorker emails patients about upcoming appointments. An entry is
// due when it is scheduled inside the reminder window and no reminder has
// been sent for it yet.
type ReminderWorker struct {
	queueRepo   repository.QueueRepository
	patientRepo repository.PatientRepository
	emailSvc    email.Service
	interval    time.Duration
	window      time.Duration
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewReminderWorker(
	queueRepo repository.QueueRepository,
	patientRepo repository.PatientRepository,
	emailSvc email.Service,
	interval time.Duration,
	window time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ReminderWorker {
	return &ReminderWorker{
		queueRepo:   queueRepo,
		patientRepo: patientRepo,
		emailSvc:    emailSvc,
		interval:    interval,
		window:      window,
		logger:      logger,
		metrics:     metrics,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting reminder worker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Shutting down reminder worker")
			return
		case <-ticker.C:
			if err := w.processDue(ctx); err != nil {
				w.logger.Error(err, "failed to process due reminders")
			}
		}
	}
}

func (w *ReminderWorker) processDue(ctx context.Context) error {
	now := time.Now()
	entries, err := w.queueRepo.ListDueReminders(ctx, now, now.Add(w.window))
	if err != nil {
		return fmt.Errorf("failed to list due reminders: %w", err)
	}

	for _, entry := range entries {
		if err := w.remind(ctx, entry); err != nil {
			w.metrics.RemindersFailed.Inc()
			w.logger.Error(err, "failed to send reminder", "entry_id", entry.ID.String())
			continue
		}
		w.metrics.RemindersSent.Inc()
	}

	return nil
}

func (w *ReminderWorker) remind(ctx context.Context, entry *model.QueueEntry) error {
	patient, err := w.patientRepo.Get(ctx, entry.PatientID)
	if err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}

	name := patient.FirstName + " " + patient.LastName
	if err := w.emailSvc.SendAppointmentReminder(ctx, patient.Email, name, entry.ScheduledAt); err != nil {
		return err
	}

	if err := w.queueRepo.MarkReminderSent(ctx, entry.ID); err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return nil
}
