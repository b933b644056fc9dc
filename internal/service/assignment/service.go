package assignment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/internal/service/audit"
	"github.com/smilecare/clinic-api/pkg/errors"
)

const (
	EventAssignmentCreated = "ASSIGNMENT_CREATED"
	EventAssignmentRevoked = "ASSIGNMENT_REVOKED"
)

// Service manages care-team membership. Every grant and revocation is
// audited and published through the outbox, since access decisions
// elsewhere in the system change the moment a row flips.
type Service struct {
	repo        repository.AssignmentRepository
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
	outboxRepo  repository.OutboxRepository
	auditor     *audit.Service
}

func NewService(repo repository.AssignmentRepository, patientRepo repository.PatientRepository,
	userRepo repository.UserRepository, outboxRepo repository.OutboxRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		auditor:     auditor,
	}
}

func (s *Service) Assign(ctx context.Context, actorID, patientID uuid.UUID, req *model.CreateAssignmentRequest) (*model.PatientAssignment, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.BadRequest("invalid user ID", err)
	}

	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, errors.NotFound("patient", err)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("user", err)
	}
	if user.Status != model.UserStatusActive {
		return nil, errors.Conflict("user is not active", nil)
	}

	assignment := &model.PatientAssignment{
		PatientID:      patientID,
		UserID:         userID,
		AssignmentRole: req.AssignmentRole,
		AssignedBy:     actorID,
	}

	if err := s.repo.Assign(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to assign: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionAssign, model.AuditEntityAssignment, assignment.ID, &audit.LogOptions{
		Changes: assignment,
	})
	s.publish(ctx, EventAssignmentCreated, assignment)

	return assignment, nil
}

func (s *Service) Revoke(ctx context.Context, actorID, patientID, userID uuid.UUID, assignmentRole string) error {
	if err := s.repo.Revoke(ctx, patientID, userID, assignmentRole); err != nil {
		return errors.NotFound("assignment", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionRevoke, model.AuditEntityAssignment, patientID, &audit.LogOptions{
		Metadata: map[string]interface{}{
			"patient_id":      patientID,
			"user_id":         userID,
			"assignment_role": assignmentRole,
		},
	})
	s.publish(ctx, EventAssignmentRevoked, map[string]interface{}{
		"patient_id":      patientID,
		"user_id":         userID,
		"assignment_role": assignmentRole,
	})
	return nil
}

func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool) ([]*model.PatientAssignment, error) {
	return s.repo.ListForPatient(ctx, patientID, activeOnly)
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   body,
	})
}
