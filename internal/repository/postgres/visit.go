package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type visitRepository struct {
	BaseRepository
}

func NewVisitRepository(base BaseRepository) repository.VisitRepository {
	return &visitRepository{base}
}

func (r *visitRepository) Create(ctx context.Context, visit *model.Visit) error {
	query := `
		INSERT INTO visits (
			id, patient_id, clinician_id, visit_date, reason, findings, dental_chart, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		visit.ID,
		visit.PatientID,
		visit.ClinicianID,
		visit.VisitDate,
		visit.Reason,
		visit.Findings,
		visit.DentalChart,
		visit.CreatedAt,
		visit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *visitRepository) Get(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	query := `
		SELECT id, patient_id, clinician_id, visit_date, reason, findings, dental_chart, created_at, updated_at
		FROM visits
		WHERE id = $1 AND deleted_at IS NULL
	`
	var visit model.Visit
	if err := r.db.GetContext(ctx, &visit, query, id); err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return &visit, nil
}

func (r *visitRepository) Update(ctx context.Context, visit *model.Visit) error {
	query := `
		UPDATE visits
		SET reason = $1, findings = $2, dental_chart = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
	`
	visit.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		visit.Reason,
		visit.Findings,
		visit.DentalChart,
		visit.UpdatedAt,
		visit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("visit not found")
	}
	return nil
}

func (r *visitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE visits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("visit not found")
	}
	return nil
}

func (r *visitRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error) {
	query := `
		SELECT id, patient_id, clinician_id, visit_date, reason, findings, dental_chart, created_at, updated_at
		FROM visits
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY visit_date DESC
	`
	var visits []*model.Visit
	if err := r.db.SelectContext(ctx, &visits, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}
