package note

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/audit"
	apperrors "github.com/smilecare/clinic-api/pkg/errors"
)

type fakeNoteRepo struct {
	notes   map[uuid.UUID]*model.ClinicalNote
	deleted []uuid.UUID
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*model.ClinicalNote)}
}

func (f *fakeNoteRepo) Create(_ context.Context, note *model.ClinicalNote) error {
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) Get(_ context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, authz.ErrTargetNotFound
	}
	return note, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *model.ClinicalNote) error {
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.notes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeNoteRepo) ListForVisit(_ context.Context, visitID uuid.UUID) ([]*model.ClinicalNote, error) {
	var out []*model.ClinicalNote
	for _, n := range f.notes {
		if n.VisitID == visitID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Verify(_ context.Context, id, verifiedBy uuid.UUID) error {
	note, ok := f.notes[id]
	if !ok {
		return authz.ErrTargetNotFound
	}
	now := time.Now()
	note.Verified = true
	note.VerifiedBy = &verifiedBy
	note.VerifiedAt = &now
	return nil
}

type fakeVisitRepo struct {
	visits map[uuid.UUID]*model.Visit
}

func (f *fakeVisitRepo) Create(_ context.Context, v *model.Visit) error { return nil }
func (f *fakeVisitRepo) Get(_ context.Context, id uuid.UUID) (*model.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return nil, authz.ErrTargetNotFound
	}
	return v, nil
}
func (f *fakeVisitRepo) Update(_ context.Context, _ *model.Visit) error { return nil }
func (f *fakeVisitRepo) Delete(_ context.Context, _ uuid.UUID) error    { return nil }
func (f *fakeVisitRepo) ListForPatient(_ context.Context, _ uuid.UUID) ([]*model.Visit, error) {
	return nil, nil
}

// noteOwnerLookup serves the ownership guard straight from the fake repo.
type noteOwnerLookup struct {
	repo *fakeNoteRepo
}

func (l *noteOwnerLookup) CreatorOf(_ context.Context, _ authz.ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	note, ok := l.repo.notes[id]
	if !ok {
		return uuid.Nil, authz.ErrTargetNotFound
	}
	return note.AuthorID, nil
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

func newTestService() (*Service, *fakeNoteRepo, *fakeAuditRepo, uuid.UUID) {
	repo := newFakeNoteRepo()
	auditRepo := &fakeAuditRepo{}
	visitID := uuid.New()
	visits := &fakeVisitRepo{visits: map[uuid.UUID]*model.Visit{
		visitID: {Base: model.Base{ID: visitID}, PatientID: uuid.New()},
	}}
	guard := authz.NewGuard(&noteOwnerLookup{repo: repo})
	svc := NewService(repo, visits, guard, audit.NewService(auditRepo, nil))
	return svc, repo, auditRepo, visitID
}

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()
	author := authz.Actor{ID: uuid.New(), Role: authz.RoleNurse}
	colleague := authz.Actor{ID: uuid.New(), Role: authz.RoleOrthodontist}
	admin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdministrative}

	t.Run("author can edit own note", func(t *testing.T) {
		svc, _, _, visitID := newTestService()
		note, err := svc.CreateNote(ctx, author, visitID, &model.CreateNoteRequest{Body: "initial findings"})
		require.NoError(t, err)

		updated, err := svc.UpdateNote(ctx, author, note.ID, &model.UpdateNoteRequest{Body: "corrected findings"})
		require.NoError(t, err)
		assert.Equal(t, "corrected findings", updated.Body)
	})

	t.Run("colleague cannot edit someone else's note", func(t *testing.T) {
		svc, _, _, visitID := newTestService()
		note, err := svc.CreateNote(ctx, author, visitID, &model.CreateNoteRequest{Body: "initial"})
		require.NoError(t, err)

		_, err = svc.UpdateNote(ctx, colleague, note.ID, &model.UpdateNoteRequest{Body: "tampered"})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	})

	t.Run("administrative role cannot edit another author's note", func(t *testing.T) {
		svc, _, _, visitID := newTestService()
		note, err := svc.CreateNote(ctx, author, visitID, &model.CreateNoteRequest{Body: "initial"})
		require.NoError(t, err)

		_, err = svc.UpdateNote(ctx, admin, note.ID, &model.UpdateNoteRequest{Body: "tampered"})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	})

	t.Run("missing note reports not found", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.UpdateNote(ctx, author, uuid.New(), &model.UpdateNoteRequest{Body: "x"})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	})
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()
	author := authz.Actor{ID: uuid.New(), Role: authz.RoleOrthodontist}

	t.Run("author can delete", func(t *testing.T) {
		svc, repo, _, visitID := newTestService()
		note, err := svc.CreateNote(ctx, author, visitID, &model.CreateNoteRequest{Body: "draft"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteNote(ctx, author, note.ID))
		assert.Contains(t, repo.deleted, note.ID)
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		svc, repo, _, visitID := newTestService()
		note, err := svc.CreateNote(ctx, author, visitID, &model.CreateNoteRequest{Body: "draft"})
		require.NoError(t, err)

		other := authz.Actor{ID: uuid.New(), Role: authz.RoleOrthodontist}
		err = svc.DeleteNote(ctx, other, note.ID)
		require.Error(t, err)
		assert.Empty(t, repo.deleted)
	})
}

func TestVerifyNote(t *testing.T) {
	ctx := context.Background()
	author := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}
	reviewer := authz.Actor{ID: uuid.New(), Role: authz.RoleOrthodontist}

	t.Run("reviewer verifies without authorship", func(t *testing.T) {
		svc, _, auditRepo, visitID := newTestService()
		note, err := svc.CreateNote(ctx, author, visitID, &model.CreateNoteRequest{Body: "student note"})
		require.NoError(t, err)

		verified, err := svc.VerifyNote(ctx, reviewer, note.ID)
		require.NoError(t, err)
		assert.True(t, verified.Verified)
		require.NotNil(t, verified.VerifiedBy)
		assert.Equal(t, reviewer.ID, *verified.VerifiedBy)

		var actions []string
		for _, e := range auditRepo.entries {
			actions = append(actions, e.Action)
		}
		assert.Contains(t, actions, model.AuditActionVerify)
	})

	t.Run("verify of missing note errors", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.VerifyNote(ctx, reviewer, uuid.New())
		require.Error(t, err)
	})
}
