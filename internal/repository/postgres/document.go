package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type documentRepository struct {
	BaseRepository
}

func NewDocumentRepository(base BaseRepository) repository.DocumentRepository {
	return &documentRepository{base}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	query := `
		INSERT INTO documents (
			id, patient_id, uploaded_by, type, name, content_type, storage_path, size_bytes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.PatientID,
		doc.UploadedBy,
		doc.Type,
		doc.Name,
		doc.ContentType,
		doc.StoragePath,
		doc.SizeBytes,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	query := `
		SELECT id, patient_id, uploaded_by, type, name, content_type, storage_path, size_bytes, created_at, updated_at
		FROM documents
		WHERE id = $1 AND deleted_at IS NULL
	`
	var doc model.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE documents SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("document not found")
	}
	return nil
}

func (r *documentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Document, error) {
	query := `
		SELECT id, patient_id, uploaded_by, type, name, content_type, storage_path, size_bytes, created_at, updated_at
		FROM documents
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	var docs []*model.Document
	if err := r.db.SelectContext(ctx, &docs, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}
