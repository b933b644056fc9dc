package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	// AssignmentRepository is the persisted care-team relation the access
	// engine consults. Assign supersedes any prior active row for the same
	// (patient, user, assignment_role) inside one transaction.
	AssignmentRepository interface {
		Assign(ctx context.Context, assignment *model.PatientAssignment) error
		Revoke(ctx context.Context, patientID, userID uuid.UUID, assignmentRole string) error
		ExistsActive(ctx context.Context, patientID, userID uuid.UUID) (bool, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool) ([]*model.PatientAssignment, error)
	}

	VisitRepository interface {
		Create(ctx context.Context, visit *model.Visit) error
		Get(ctx context.Context, id uuid.UUID) (*model.Visit, error)
		Update(ctx context.Context, visit *model.Visit) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error)
	}

	NoteRepository interface {
		Create(ctx context.Context, note *model.ClinicalNote) error
		Get(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error)
		Update(ctx context.Context, note *model.ClinicalNote) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForVisit(ctx context.Context, visitID uuid.UUID) ([]*model.ClinicalNote, error)
		Verify(ctx context.Context, id, verifiedBy uuid.UUID) error
	}

	DocumentRepository interface {
		Create(ctx context.Context, doc *model.Document) error
		Get(ctx context.Context, id uuid.UUID) (*model.Document, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Document, error)
	}

	QueueRepository interface {
		Create(ctx context.Context, entry *model.QueueEntry) error
		Get(ctx context.Context, id uuid.UUID) (*model.QueueEntry, error)
		Update(ctx context.Context, entry *model.QueueEntry) error
		List(ctx context.Context, filters *model.QueueFilters) ([]*model.QueueEntry, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.QueueEntry, error)
		ListDueReminders(ctx context.Context, windowStart, windowEnd time.Time) ([]*model.QueueEntry, error)
		MarkReminderSent(ctx context.Context, id uuid.UUID) error
	}

	CaseRepository interface {
		Create(ctx context.Context, treatmentCase *model.TreatmentCase) error
		Get(ctx context.Context, id uuid.UUID) (*model.TreatmentCase, error)
		Update(ctx context.Context, treatmentCase *model.TreatmentCase) error
		Close(ctx context.Context, id uuid.UUID) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentCase, error)
	}

	InventoryRepository interface {
		Create(ctx context.Context, item *model.InventoryItem) error
		Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
		Update(ctx context.Context, item *model.InventoryItem) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.InventoryItem, error)
		ListBelowReorderLevel(ctx context.Context) ([]*model.InventoryItem, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error)
		DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	}
)
