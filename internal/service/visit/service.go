package visit

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
	repo    repository.VisitRepository
	auditor *audit.Service
}

func NewService(repo repository.VisitRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) CreateVisit(ctx context.Context, actorID, patientID uuid.UUID, req *model.CreateVisitRequest) (*model.Visit, error) {
	now := time.Now()
	visit := &model.Visit{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   patientID,
		ClinicianID: actorID,
		VisitDate:   req.VisitDate,
		Reason:      req.Reason,
		Findings:    req.Findings,
		DentalChart: req.DentalChart,
	}

	if err := s.repo.Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to create visit: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityVisit, visit.ID, &audit.LogOptions{
		Changes: visit,
	})
	return visit, nil
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateVisit(ctx context.Context, actorID, id uuid.UUID, req *model.UpdateVisitRequest) (*model.Visit, error) {
	visit, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}

	if req.Reason != nil {
		visit.Reason = *req.Reason
	}
	if req.Findings != nil {
		visit.Findings = *req.Findings
	}
	if req.DentalChart != nil {
		visit.DentalChart = req.DentalChart
	}

	if err := s.repo.Update(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to update visit: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityVisit, id, &audit.LogOptions{
		Changes: req,
	})
	return visit, nil
}

func (s *Service) DeleteVisit(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionDelete, model.AuditEntityVisit, id, nil)
	return nil
}

func (s *Service) ListVisitsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error) {
	return s.repo.ListForPatient(ctx, patientID)
}
