package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/audit"
	apperrors "github.com/smilecare/clinic-api/pkg/errors"
)

type fakeAssignmentRepo struct {
	assignments []*model.PatientAssignment
}

func (f *fakeAssignmentRepo) Assign(_ context.Context, a *model.PatientAssignment) error {
	a.ID = uuid.New()
	a.Active = true
	for _, existing := range f.assignments {
		if existing.Active && existing.PatientID == a.PatientID &&
			existing.UserID == a.UserID && existing.AssignmentRole == a.AssignmentRole {
			existing.Active = false
		}
	}
	f.assignments = append(f.assignments, a)
	return nil
}

func (f *fakeAssignmentRepo) Revoke(_ context.Context, patientID, userID uuid.UUID, role string) error {
	for _, a := range f.assignments {
		if a.Active && a.PatientID == patientID && a.UserID == userID && a.AssignmentRole == role {
			a.Active = false
			return nil
		}
	}
	return assert.AnError
}

func (f *fakeAssignmentRepo) ExistsActive(_ context.Context, patientID, userID uuid.UUID) (bool, error) {
	for _, a := range f.assignments {
		if a.Active && a.PatientID == patientID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID, activeOnly bool) ([]*model.PatientAssignment, error) {
	var out []*model.PatientAssignment
	for _, a := range f.assignments {
		if a.PatientID == patientID && (!activeOnly || a.Active) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

func (f *fakePatientRepo) Update(_ context.Context, _ *model.Patient) error { return nil }
func (f *fakePatientRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }
func (f *fakePatientRepo) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error { return nil }
func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, assert.AnError
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, assert.AnError
}
func (f *fakeUserRepo) Update(_ context.Context, _ *model.User) error { return nil }
func (f *fakeUserRepo) Delete(_ context.Context, _ uuid.UUID) error   { return nil }
func (f *fakeUserRepo) List(_ context.Context, _ *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}

func (f *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, log *model.AuditLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ map[string]interface{}) ([]*model.AuditLog, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newTestService() (*Service, *fakeAssignmentRepo, *fakeOutboxRepo, uuid.UUID, uuid.UUID) {
	patientID := uuid.New()
	userID := uuid.New()

	repo := &fakeAssignmentRepo{}
	outbox := &fakeOutboxRepo{}
	patients := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{
		patientID: {Base: model.Base{ID: patientID}, Status: string(model.PatientStatusActive)},
	}}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		userID: {Base: model.Base{ID: userID}, Role: "NURSE", Status: model.UserStatusActive},
	}}

	svc := NewService(repo, patients, users, outbox, audit.NewService(&fakeAuditRepo{}, nil))
	return svc, repo, outbox, patientID, userID
}

func TestAssign(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("creates active assignment and publishes event", func(t *testing.T) {
		svc, repo, outbox, patientID, userID := newTestService()

		assignment, err := svc.Assign(ctx, actorID, patientID, &model.CreateAssignmentRequest{
			UserID:         userID.String(),
			AssignmentRole: model.AssignmentRoleNurse,
		})
		require.NoError(t, err)
		assert.True(t, assignment.Active)
		assert.Equal(t, actorID, assignment.AssignedBy)

		active, err := repo.ExistsActive(ctx, patientID, userID)
		require.NoError(t, err)
		assert.True(t, active)

		require.Len(t, outbox.events, 1)
		assert.Equal(t, EventAssignmentCreated, outbox.events[0].EventType)
	})

	t.Run("reassignment supersedes the prior active row", func(t *testing.T) {
		svc, repo, _, patientID, userID := newTestService()

		_, err := svc.Assign(ctx, actorID, patientID, &model.CreateAssignmentRequest{
			UserID:         userID.String(),
			AssignmentRole: model.AssignmentRoleNurse,
		})
		require.NoError(t, err)

		_, err = svc.Assign(ctx, actorID, patientID, &model.CreateAssignmentRequest{
			UserID:         userID.String(),
			AssignmentRole: model.AssignmentRoleNurse,
		})
		require.NoError(t, err)

		all, err := repo.ListForPatient(ctx, patientID, false)
		require.NoError(t, err)
		require.Len(t, all, 2)

		active, err := repo.ListForPatient(ctx, patientID, true)
		require.NoError(t, err)
		assert.Len(t, active, 1)
	})

	t.Run("unknown patient is not found", func(t *testing.T) {
		svc, _, outbox, _, userID := newTestService()

		_, err := svc.Assign(ctx, actorID, uuid.New(), &model.CreateAssignmentRequest{
			UserID:         userID.String(),
			AssignmentRole: model.AssignmentRoleNurse,
		})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
		assert.Empty(t, outbox.events)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("revocation deactivates and publishes", func(t *testing.T) {
		svc, repo, outbox, patientID, userID := newTestService()

		_, err := svc.Assign(ctx, actorID, patientID, &model.CreateAssignmentRequest{
			UserID:         userID.String(),
			AssignmentRole: model.AssignmentRoleNurse,
		})
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, actorID, patientID, userID, model.AssignmentRoleNurse))

		active, err := repo.ExistsActive(ctx, patientID, userID)
		require.NoError(t, err)
		assert.False(t, active)

		require.Len(t, outbox.events, 2)
		assert.Equal(t, EventAssignmentRevoked, outbox.events[1].EventType)
	})

	t.Run("revoking a missing assignment is not found", func(t *testing.T) {
		svc, _, _, patientID, userID := newTestService()

		err := svc.Revoke(ctx, actorID, patientID, userID, model.AssignmentRoleNurse)
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	})
}
