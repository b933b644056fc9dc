package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type queueRepository struct {
	BaseRepository
}

func NewQueueRepository(base BaseRepository) repository.QueueRepository {
	return &queueRepository{base}
}

func (r *queueRepository) Create(ctx context.Context, entry *model.QueueEntry) error {
	query := `
		INSERT INTO queue_entries (
			id, patient_id, clinician_id, scheduled_at, status, notes, reminder_sent, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.PatientID,
		entry.ClinicianID,
		entry.ScheduledAt,
		entry.Status,
		entry.Notes,
		entry.ReminderSent,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create queue entry: %w", err)
	}
	return nil
}

func (r *queueRepository) Get(ctx context.Context, id uuid.UUID) (*model.QueueEntry, error) {
	query := `
		SELECT id, patient_id, clinician_id, scheduled_at, status, notes, reminder_sent, created_at, updated_at
		FROM queue_entries
		WHERE id = $1 AND deleted_at IS NULL
	`
	var entry model.QueueEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}
	return &entry, nil
}

func (r *queueRepository) Update(ctx context.Context, entry *model.QueueEntry) error {
	query := `
		UPDATE queue_entries
		SET scheduled_at = $1, status = $2, notes = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
	`
	entry.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		entry.ScheduledAt,
		entry.Status,
		entry.Notes,
		entry.UpdatedAt,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update queue entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("queue entry not found")
	}
	return nil
}

func (r *queueRepository) List(ctx context.Context, filters *model.QueueFilters) ([]*model.QueueEntry, error) {
	query := `
		SELECT id, patient_id, clinician_id, scheduled_at, status, notes, reminder_sent, created_at, updated_at
		FROM queue_entries
		WHERE deleted_at IS NULL
	`
	var args []interface{}

	if filters != nil {
		if filters.ClinicianID != uuid.Nil {
			query += fmt.Sprintf(" AND clinician_id = $%d", len(args)+1)
			args = append(args, filters.ClinicianID)
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", len(args)+1)
			args = append(args, filters.Status)
		}
		if !filters.Date.IsZero() {
			query += fmt.Sprintf(" AND scheduled_at >= $%d AND scheduled_at < $%d", len(args)+1, len(args)+2)
			day := filters.Date.Truncate(24 * time.Hour)
			args = append(args, day, day.Add(24*time.Hour))
		}
	}
	query += " ORDER BY scheduled_at ASC"

	var entries []*model.QueueEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	return entries, nil
}

func (r *queueRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.QueueEntry, error) {
	query := `
		SELECT id, patient_id, clinician_id, scheduled_at, status, notes, reminder_sent, created_at, updated_at
		FROM queue_entries
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY scheduled_at DESC
	`
	var entries []*model.QueueEntry
	if err := r.db.SelectContext(ctx, &entries, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	return entries, nil
}

func (r *queueRepository) ListDueReminders(ctx context.Context, windowStart, windowEnd time.Time) ([]*model.QueueEntry, error) {
	query := `
		SELECT id, patient_id, clinician_id, scheduled_at, status, notes, reminder_sent, created_at, updated_at
		FROM queue_entries
		WHERE status = $1
		  AND reminder_sent = false
		  AND scheduled_at >= $2 AND scheduled_at < $3
		  AND deleted_at IS NULL
		ORDER BY scheduled_at ASC
	`
	var entries []*model.QueueEntry
	if err := r.db.SelectContext(ctx, &entries, query, model.QueueStatusScheduled, windowStart, windowEnd); err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return entries, nil
}

func (r *queueRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE queue_entries SET reminder_sent = true, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return nil
}
