package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type noteRepository struct {
	BaseRepository
}

func NewNoteRepository(base BaseRepository) repository.NoteRepository {
	return &noteRepository{base}
}

func (r *noteRepository) Create(ctx context.Context, note *model.ClinicalNote) error {
	query := `
		INSERT INTO clinical_notes (
			id, visit_id, patient_id, author_id, body, verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.VisitID,
		note.PatientID,
		note.AuthorID,
		note.Body,
		note.Verified,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *noteRepository) Get(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	query := `
		SELECT id, visit_id, patient_id, author_id, body, verified, verified_by, verified_at, created_at, updated_at
		FROM clinical_notes
		WHERE id = $1 AND deleted_at IS NULL
	`
	var note model.ClinicalNote
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.ClinicalNote) error {
	query := `
		UPDATE clinical_notes
		SET body = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`
	note.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, note.Body, note.UpdatedAt, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("note not found")
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE clinical_notes SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("note not found")
	}
	return nil
}

func (r *noteRepository) ListForVisit(ctx context.Context, visitID uuid.UUID) ([]*model.ClinicalNote, error) {
	query := `
		SELECT id, visit_id, patient_id, author_id, body, verified, verified_by, verified_at, created_at, updated_at
		FROM clinical_notes
		WHERE visit_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	var notes []*model.ClinicalNote
	if err := r.db.SelectContext(ctx, &notes, query, visitID); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) Verify(ctx context.Context, id, verifiedBy uuid.UUID) error {
	query := `
		UPDATE clinical_notes
		SET verified = true, verified_by = $1, verified_at = $2, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL AND verified = false
	`
	result, err := r.db.ExecContext(ctx, query, verifiedBy, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to verify note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("note not found or already verified")
	}
	return nil
}
