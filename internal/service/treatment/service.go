package treatment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/internal/service/audit"
)

type Service struct {
	repo    repository.CaseRepository
	auditor *audit.Service
}

func NewService(repo repository.CaseRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) OpenCase(ctx context.Context, actorID, patientID uuid.UUID, req *model.CreateCaseRequest) (*model.TreatmentCase, error) {
	now := time.Now()
	treatmentCase := &model.TreatmentCase{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID: patientID,
		OpenedBy:  actorID,
		Title:     req.Title,
		Plan:      req.Plan,
		Status:    model.CaseStatusOpen,
	}

	if err := s.repo.Create(ctx, treatmentCase); err != nil {
		return nil, fmt.Errorf("failed to open treatment case: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityCase, treatmentCase.ID, &audit.LogOptions{
		Changes: treatmentCase,
	})
	return treatmentCase, nil
}

func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*model.TreatmentCase, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateCase(ctx context.Context, actorID, id uuid.UUID, req *model.UpdateCaseRequest) (*model.TreatmentCase, error) {
	treatmentCase, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment case: %w", err)
	}

	if req.Title != nil {
		treatmentCase.Title = *req.Title
	}
	if req.Plan != nil {
		treatmentCase.Plan = *req.Plan
	}

	if err := s.repo.Update(ctx, treatmentCase); err != nil {
		return nil, fmt.Errorf("failed to update treatment case: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityCase, id, &audit.LogOptions{
		Changes: req,
	})
	return treatmentCase, nil
}

func (s *Service) CloseCase(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.Close(ctx, id); err != nil {
		return fmt.Errorf("failed to close treatment case: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityCase, id, &audit.LogOptions{
		Metadata: map[string]interface{}{"status": model.CaseStatusClosed},
	})
	return nil
}

func (s *Service) ListCasesForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentCase, error) {
	return s.repo.ListForPatient(ctx, patientID)
}
