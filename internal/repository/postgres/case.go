package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type caseRepository struct {
	BaseRepository
}

func NewCaseRepository(base BaseRepository) repository.CaseRepository {
	return &caseRepository{base}
}

func (r *caseRepository) Create(ctx context.Context, treatmentCase *model.TreatmentCase) error {
	query := `
		INSERT INTO treatment_cases (
			id, patient_id, opened_by, title, plan, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		treatmentCase.ID,
		treatmentCase.PatientID,
		treatmentCase.OpenedBy,
		treatmentCase.Title,
		treatmentCase.Plan,
		treatmentCase.Status,
		treatmentCase.CreatedAt,
		treatmentCase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create treatment case: %w", err)
	}
	return nil
}

func (r *caseRepository) Get(ctx context.Context, id uuid.UUID) (*model.TreatmentCase, error) {
	query := `
		SELECT id, patient_id, opened_by, title, plan, status, closed_at, created_at, updated_at
		FROM treatment_cases
		WHERE id = $1 AND deleted_at IS NULL
	`
	var treatmentCase model.TreatmentCase
	if err := r.db.GetContext(ctx, &treatmentCase, query, id); err != nil {
		return nil, fmt.Errorf("failed to get treatment case: %w", err)
	}
	return &treatmentCase, nil
}

func (r *caseRepository) Update(ctx context.Context, treatmentCase *model.TreatmentCase) error {
	query := `
		UPDATE treatment_cases
		SET title = $1, plan = $2, updated_at = $3
		WHERE id = $4 AND status = $5 AND deleted_at IS NULL
	`
	treatmentCase.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		treatmentCase.Title,
		treatmentCase.Plan,
		treatmentCase.UpdatedAt,
		treatmentCase.ID,
		model.CaseStatusOpen,
	)
	if err != nil {
		return fmt.Errorf("failed to update treatment case: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment case not found or closed")
	}
	return nil
}

func (r *caseRepository) Close(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE treatment_cases
		SET status = $1, closed_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, model.CaseStatusClosed, time.Now(), id, model.CaseStatusOpen)
	if err != nil {
		return fmt.Errorf("failed to close treatment case: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment case not found or already closed")
	}
	return nil
}

func (r *caseRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentCase, error) {
	query := `
		SELECT id, patient_id, opened_by, title, plan, status, closed_at, created_at, updated_at
		FROM treatment_cases
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	var cases []*model.TreatmentCase
	if err := r.db.SelectContext(ctx, &cases, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list treatment cases: %w", err)
	}
	return cases, nil
}
