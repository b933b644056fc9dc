package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
)

// lookupRepository backs the access engine's indirect patient resolution
// and the ownership guard's creator lookups.
type lookupRepository struct {
	BaseRepository
}

func NewLookupRepository(base BaseRepository) *lookupRepository {
	return &lookupRepository{base}
}

// patientColumnQueries whitelists the tables an indirect resolver may
// touch. Table names never come from request input.
var patientColumnQueries = map[string]string{
	authz.TableVisits:         `SELECT patient_id FROM visits WHERE id = $1 AND deleted_at IS NULL`,
	authz.TableClinicalNotes:  `SELECT patient_id FROM clinical_notes WHERE id = $1 AND deleted_at IS NULL`,
	authz.TableDocuments:      `SELECT patient_id FROM documents WHERE id = $1 AND deleted_at IS NULL`,
	authz.TableQueueEntries:   `SELECT patient_id FROM queue_entries WHERE id = $1 AND deleted_at IS NULL`,
	authz.TableTreatmentCases: `SELECT patient_id FROM treatment_cases WHERE id = $1 AND deleted_at IS NULL`,
}

func (r *lookupRepository) PatientIDFor(ctx context.Context, table string, id uuid.UUID) (uuid.UUID, error) {
	query, ok := patientColumnQueries[table]
	if !ok {
		return uuid.Nil, fmt.Errorf("no patient resolver registered for table %q", table)
	}

	var patientID uuid.UUID
	if err := r.db.GetContext(ctx, &patientID, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, authz.ErrTargetNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve patient for %s: %w", table, err)
	}
	return patientID, nil
}

var creatorColumnQueries = map[authz.ResourceKind]string{
	authz.KindClinicalNote: `SELECT author_id FROM clinical_notes WHERE id = $1 AND deleted_at IS NULL`,
	authz.KindDocument:     `SELECT uploaded_by FROM documents WHERE id = $1 AND deleted_at IS NULL`,
}

func (r *lookupRepository) CreatorOf(ctx context.Context, kind authz.ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	query, ok := creatorColumnQueries[kind]
	if !ok {
		return uuid.Nil, fmt.Errorf("no creator lookup registered for resource kind %q", kind)
	}

	var creator uuid.UUID
	if err := r.db.GetContext(ctx, &creator, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, authz.ErrTargetNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve creator for %s: %w", kind, err)
	}
	return creator, nil
}
