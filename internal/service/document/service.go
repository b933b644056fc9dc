package document

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

type Service struct {
	repo    repository.DocumentRepository
	guard   *authz.Guard
	auditor *audit.Service
}

func NewService(repo repository.DocumentRepository, guard *authz.Guard, auditor *audit.Service) *Service {
	return &Service{repo: repo, guard: guard, auditor: auditor}
}

func (s *Service) CreateDocument(ctx context.Context, actorID, patientID uuid.UUID, req *model.CreateDocumentRequest) (*model.Document, error) {
	now := time.Now()
	doc := &model.Document{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   patientID,
		UploadedBy:  actorID,
		Type:        req.Type,
		Name:        req.Name,
		ContentType: req.ContentType,
		StoragePath: req.StoragePath,
		SizeBytes:   req.SizeBytes,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityDocument, doc.ID, &audit.LogOptions{
		Changes: doc,
	})
	return doc, nil
}

func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListDocumentsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Document, error) {
	return s.repo.ListForPatient(ctx, patientID)
}

// DeleteDocument is uploader-only, same rule as note mutation.
func (s *Service) DeleteDocument(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	decision, err := s.guard.CheckOwnership(ctx, actor, authz.KindDocument, id)
	if err != nil {
		return errors.Internal(err)
	}
	switch decision {
	case authz.DecisionGrant:
	case authz.DecisionNotFound:
		return errors.NotFound("document", nil)
	default:
		return errors.Forbidden(nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.auditor.Log(ctx, actor.ID, model.AuditActionDelete, model.AuditEntityDocument, id, nil)
	return nil
}
