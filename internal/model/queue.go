package model

import (
	"time"

	"github.com/google/uuid"
)

type QueueStatus string

const (
	QueueStatusScheduled QueueStatus = "scheduled"
	QueueStatusWaiting   QueueStatus = "waiting"
	QueueStatusInChair   QueueStatus = "in_chair"
	QueueStatusDone      QueueStatus = "done"
	QueueStatusCancelled QueueStatus = "cancelled"
)

// QueueEntry is a scheduled appointment slot in the daily queue.
type QueueEntry struct {
	Base
	PatientID    uuid.UUID   `db:"patient_id" json:"patient_id"`
	ClinicianID  uuid.UUID   `db:"clinician_id" json:"clinician_id"`
	ScheduledAt  time.Time   `db:"scheduled_at" json:"scheduled_at"`
	Status       QueueStatus `db:"status" json:"status"`
	Notes        string      `db:"notes" json:"notes"`
	ReminderSent bool        `db:"reminder_sent" json:"reminder_sent"`
}

type CreateQueueEntryRequest struct {
	ClinicianID string    `json:"clinician_id" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type UpdateQueueEntryRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status" binding:"omitempty,oneof=scheduled waiting in_chair done cancelled"`
	Notes       *string    `json:"notes"`
}

type QueueFilters struct {
	ClinicianID uuid.UUID `json:"clinician_id" form:"clinician_id"`
	Status      string    `json:"status" form:"status"`
	Date        time.Time `json:"date" form:"date"`
}
