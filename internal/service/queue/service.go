package queue

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
	repo    repository.QueueRepository
	auditor *audit.Service
}

func NewService(repo repository.QueueRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) CreateEntry(ctx context.Context, actorID, patientID uuid.UUID, req *model.CreateQueueEntryRequest) (*model.QueueEntry, error) {
	clinicianID, err := uuid.Parse(req.ClinicianID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinician ID: %w", err)
	}

	now := time.Now()
	entry := &model.QueueEntry{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   patientID,
		ClinicianID: clinicianID,
		ScheduledAt: req.ScheduledAt,
		Status:      model.QueueStatusScheduled,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create queue entry: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityQueueEntry, entry.ID, &audit.LogOptions{
		Changes: entry,
	})
	return entry, nil
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*model.QueueEntry, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateEntry(ctx context.Context, actorID, id uuid.UUID, req *model.UpdateQueueEntryRequest) (*model.QueueEntry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}

	if req.ScheduledAt != nil {
		entry.ScheduledAt = *req.ScheduledAt
	}
	if req.Status != nil {
		entry.Status = model.QueueStatus(*req.Status)
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update queue entry: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityQueueEntry, id, &audit.LogOptions{
		Changes: req,
	})
	return entry, nil
}

func (s *Service) ListEntries(ctx context.Context, filters *model.QueueFilters) ([]*model.QueueEntry, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) ListEntriesForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.QueueEntry, error) {
	return s.repo.ListForPatient(ctx, patientID)
}
