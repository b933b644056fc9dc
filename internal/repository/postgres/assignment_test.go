package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/model"
)

func newMockRepo(t *testing.T) (BaseRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBaseRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestAssignSupersedesPriorActiveRowInOneTransaction(t *testing.T) {
	base, mock := newMockRepo(t)
	repo := NewAssignmentRepository(base)

	patientID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE patient_assignments")).
		WithArgs(sqlmock.AnyArg(), patientID, userID, model.AssignmentRoleNurse).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO patient_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Assign(context.Background(), &model.PatientAssignment{
		PatientID:      patientID,
		UserID:         userID,
		AssignmentRole: model.AssignmentRoleNurse,
		AssignedBy:     uuid.New(),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRollsBackWhenInsertFails(t *testing.T) {
	base, mock := newMockRepo(t)
	repo := NewAssignmentRepository(base)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE patient_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO patient_assignments")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Assign(context.Background(), &model.PatientAssignment{
		PatientID:      uuid.New(),
		UserID:         uuid.New(),
		AssignmentRole: model.AssignmentRoleStudent,
		AssignedBy:     uuid.New(),
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsActive(t *testing.T) {
	base, mock := newMockRepo(t)
	repo := NewAssignmentRepository(base)

	patientID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(patientID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsActive(context.Background(), patientID, userID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeMissingAssignment(t *testing.T) {
	base, mock := newMockRepo(t)
	repo := NewAssignmentRepository(base)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE patient_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Revoke(context.Background(), uuid.New(), uuid.New(), model.AssignmentRoleNurse)
	assert.ErrorContains(t, err, "assignment not found")
}

func TestPatientIDForMissingRowIsTargetNotFound(t *testing.T) {
	base, mock := newMockRepo(t)
	repo := NewLookupRepository(base)

	visitID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT patient_id FROM visits")).
		WithArgs(visitID).
		WillReturnRows(sqlmock.NewRows([]string{"patient_id"}))

	_, err := repo.PatientIDFor(context.Background(), authz.TableVisits, visitID)
	assert.ErrorIs(t, err, authz.ErrTargetNotFound)
}

func TestPatientIDForUnknownTableRejected(t *testing.T) {
	base, _ := newMockRepo(t)
	repo := NewLookupRepository(base)

	_, err := repo.PatientIDFor(context.Background(), "audit_logs", uuid.New())
	assert.ErrorContains(t, err, "no patient resolver registered")
}

func TestCreatorOf(t *testing.T) {
	base, mock := newMockRepo(t)
	repo := NewLookupRepository(base)

	noteID := uuid.New()
	authorID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT author_id FROM clinical_notes")).
		WithArgs(noteID).
		WillReturnRows(sqlmock.NewRows([]string{"author_id"}).AddRow(authorID.String()))

	creator, err := repo.CreatorOf(context.Background(), authz.KindClinicalNote, noteID)
	require.NoError(t, err)
	assert.Equal(t, authorID, creator)
}
