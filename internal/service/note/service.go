package note

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/internal/service/audit"
	"github.com/smilecare/clinic-api/pkg/errors"
)

// Service owns clinical note lifecycle. Mutation is author-only: the
// ownership guard runs after the role check, and no role bypasses it.
type Service struct {
	repo      repository.NoteRepository
	visitRepo repository.VisitRepository
	guard     *authz.Guard
	auditor   *audit.Service
}

func NewService(repo repository.NoteRepository, visitRepo repository.VisitRepository, guard *authz.Guard, auditor *audit.Service) *Service {
	return &Service{repo: repo, visitRepo: visitRepo, guard: guard, auditor: auditor}
}

func (s *Service) CreateNote(ctx context.Context, actor authz.Actor, visitID uuid.UUID, req *model.CreateNoteRequest) (*model.ClinicalNote, error) {
	visit, err := s.visitRepo.Get(ctx, visitID)
	if err != nil {
		return nil, errors.NotFound("visit", err)
	}

	now := time.Now()
	note := &model.ClinicalNote{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VisitID:   visitID,
		PatientID: visit.PatientID,
		AuthorID:  actor.ID,
		Body:      req.Body,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, model.AuditActionCreate, model.AuditEntityNote, note.ID, &audit.LogOptions{
		Changes: note,
	})
	return note, nil
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListNotesForVisit(ctx context.Context, visitID uuid.UUID) ([]*model.ClinicalNote, error) {
	return s.repo.ListForVisit(ctx, visitID)
}

func (s *Service) UpdateNote(ctx context.Context, actor authz.Actor, id uuid.UUID, req *model.UpdateNoteRequest) (*model.ClinicalNote, error) {
	if err := s.checkAuthor(ctx, actor, id); err != nil {
		return nil, err
	}

	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	note.Body = req.Body
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, model.AuditActionUpdate, model.AuditEntityNote, id, &audit.LogOptions{
		Changes: req,
	})
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if err := s.checkAuthor(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, model.AuditActionDelete, model.AuditEntityNote, id, nil)
	return nil
}

// VerifyNote marks a note as reviewed. The route-level matrix restricts
// it to senior clinical roles; authorship is not required here.
func (s *Service) VerifyNote(ctx context.Context, actor authz.Actor, id uuid.UUID) (*model.ClinicalNote, error) {
	if err := s.repo.Verify(ctx, id, actor.ID); err != nil {
		return nil, errors.Conflict("note cannot be verified", err)
	}

	s.auditor.Log(ctx, actor.ID, model.AuditActionVerify, model.AuditEntityNote, id, nil)
	return s.repo.Get(ctx, id)
}

func (s *Service) checkAuthor(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	decision, err := s.guard.CheckOwnership(ctx, actor, authz.KindClinicalNote, id)
	if err != nil {
		return errors.Internal(err)
	}
	switch decision {
	case authz.DecisionGrant:
		return nil
	case authz.DecisionNotFound:
		return errors.NotFound("note", nil)
	default:
		return errors.Forbidden(nil)
	}
}
