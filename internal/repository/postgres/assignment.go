package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type assignmentRepository struct {
	BaseRepository
}

func NewAssignmentRepository(base BaseRepository) repository.AssignmentRepository {
	return &assignmentRepository{base}
}

// Assign supersedes any prior active assignment for the same
// (patient, user, assignment_role) triple: the old row is deactivated and
// the new one inserted in one transaction, so the partial unique index on
// active rows never sees zero or two active rows for the triple.
func (r *assignmentRepository) Assign(ctx context.Context, assignment *model.PatientAssignment) error {
	assignment.ID = uuid.New()
	assignment.Active = true
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		deactivate := `
			UPDATE patient_assignments
			SET active = false, updated_at = $1
			WHERE patient_id = $2 AND user_id = $3 AND assignment_role = $4 AND active = true
		`
		if _, err := tx.ExecContext(ctx, deactivate,
			assignment.UpdatedAt,
			assignment.PatientID,
			assignment.UserID,
			assignment.AssignmentRole,
		); err != nil {
			return fmt.Errorf("failed to deactivate prior assignment: %w", err)
		}

		insert := `
			INSERT INTO patient_assignments (
				id, patient_id, user_id, assignment_role, assigned_by, active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.ExecContext(ctx, insert,
			assignment.ID,
			assignment.PatientID,
			assignment.UserID,
			assignment.AssignmentRole,
			assignment.AssignedBy,
			assignment.Active,
			assignment.CreatedAt,
			assignment.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		return nil
	})
}

// Revoke deactivates the assignment instead of deleting it, preserving
// history for audit.
func (r *assignmentRepository) Revoke(ctx context.Context, patientID, userID uuid.UUID, assignmentRole string) error {
	query := `
		UPDATE patient_assignments
		SET active = false, updated_at = $1
		WHERE patient_id = $2 AND user_id = $3 AND assignment_role = $4 AND active = true
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), patientID, userID, assignmentRole)
	if err != nil {
		return fmt.Errorf("failed to revoke assignment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assignment not found")
	}
	return nil
}

// ExistsActive is the single indexed read the access engine performs for
// conditional decisions.
func (r *assignmentRepository) ExistsActive(ctx context.Context, patientID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM patient_assignments
			WHERE patient_id = $1 AND user_id = $2 AND active = true
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, patientID, userID); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}

func (r *assignmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool) ([]*model.PatientAssignment, error) {
	query := `
		SELECT id, patient_id, user_id, assignment_role, assigned_by, active, created_at, updated_at
		FROM patient_assignments
		WHERE patient_id = $1
	`
	if activeOnly {
		query += " AND active = true"
	}
	query += " ORDER BY created_at DESC"

	var assignments []*model.PatientAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}
