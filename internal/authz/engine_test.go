package authz

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/clinic-api/pkg/logger"
)

// fakePatientLookup serves canned patient IDs per (table, row) pair and
// fails the test if queried when it must not be.
type fakePatientLookup struct {
	t       *testing.T
	rows    map[string]uuid.UUID
	forbade bool
	calls   int
}

func (f *fakePatientLookup) PatientIDFor(_ context.Context, table string, id uuid.UUID) (uuid.UUID, error) {
	if f.forbade {
		f.t.Fatal("patient lookup performed on an unconditional path")
	}
	f.calls++
	patientID, ok := f.rows[table+"/"+id.String()]
	if !ok {
		return uuid.Nil, ErrTargetNotFound
	}
	return patientID, nil
}

type fakeAssignments struct {
	t       *testing.T
	active  map[string]bool
	forbade bool
	err     error
	calls   int
}

func (f *fakeAssignments) ExistsActive(_ context.Context, patientID, userID uuid.UUID) (bool, error) {
	if f.forbade {
		f.t.Fatal("assignment lookup performed on an unconditional path")
	}
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.active[patientID.String()+"/"+userID.String()], nil
}

func assignKey(patientID, userID uuid.UUID) string {
	return patientID.String() + "/" + userID.String()
}

func newTestEngine(t *testing.T, patients *fakePatientLookup, assignments *fakeAssignments) *Engine {
	t.Helper()
	return NewEngine(DefaultMatrix(), patients, assignments, logger.NewLogger(nil), nil)
}

func TestAuthorizeDenyPathPerformsNoIO(t *testing.T) {
	patients := &fakePatientLookup{t: t, forbade: true}
	assignments := &fakeAssignments{t: t, forbade: true}
	engine := newTestEngine(t, patients, assignments)

	actor := Actor{ID: uuid.New(), Role: RoleReception}
	outcome, err := engine.Authorize(context.Background(), actor, ObjectClinicalNote, ActionRead,
		DirectParam("id"), map[string]string{"id": uuid.New().String()})

	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, outcome.Decision)
}

func TestAuthorizeAllowPathPerformsNoIO(t *testing.T) {
	patients := &fakePatientLookup{t: t, forbade: true}
	assignments := &fakeAssignments{t: t, forbade: true}
	engine := newTestEngine(t, patients, assignments)

	actor := Actor{ID: uuid.New(), Role: RoleAdministrative}
	outcome, err := engine.Authorize(context.Background(), actor, ObjectClinicalNote, ActionRead,
		DirectParam("id"), map[string]string{"id": uuid.New().String()})

	require.NoError(t, err)
	assert.Equal(t, DecisionGrant, outcome.Decision)
}

func TestAuthorizeConditionalGrantsOnlyWithActiveAssignment(t *testing.T) {
	patientID := uuid.New()
	student := Actor{ID: uuid.New(), Role: RoleStudent}
	otherStudent := Actor{ID: uuid.New(), Role: RoleStudent}

	assignments := &fakeAssignments{t: t, active: map[string]bool{
		assignKey(patientID, student.ID): true,
	}}
	engine := newTestEngine(t, &fakePatientLookup{t: t}, assignments)

	params := map[string]string{"id": patientID.String()}

	outcome, err := engine.Authorize(context.Background(), student, ObjectClinicalNote, ActionRead,
		DirectParam("id"), params)
	require.NoError(t, err)
	assert.Equal(t, DecisionGrant, outcome.Decision)
	assert.Equal(t, patientID, outcome.PatientID)

	outcome, err = engine.Authorize(context.Background(), otherStudent, ObjectClinicalNote, ActionRead,
		DirectParam("id"), params)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, outcome.Decision)
}

func TestAuthorizeFlipsToDenyAfterDeactivation(t *testing.T) {
	patientID := uuid.New()
	nurse := Actor{ID: uuid.New(), Role: RoleNurse}

	assignments := &fakeAssignments{t: t, active: map[string]bool{
		assignKey(patientID, nurse.ID): true,
	}}
	engine := newTestEngine(t, &fakePatientLookup{t: t}, assignments)
	params := map[string]string{"id": patientID.String()}

	outcome, err := engine.Authorize(context.Background(), nurse, ObjectPatient, ActionRead,
		DirectParam("id"), params)
	require.NoError(t, err)
	require.Equal(t, DecisionGrant, outcome.Decision)

	// Rotating the nurse off the care team must flip the identical call.
	assignments.active[assignKey(patientID, nurse.ID)] = false

	outcome, err = engine.Authorize(context.Background(), nurse, ObjectPatient, ActionRead,
		DirectParam("id"), params)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, outcome.Decision)
}

func TestAuthorizeIndirectResolution(t *testing.T) {
	patientID := uuid.New()
	visitID := uuid.New()
	surgeon := Actor{ID: uuid.New(), Role: RoleDentalSurgeon}

	patients := &fakePatientLookup{t: t, rows: map[string]uuid.UUID{
		TableVisits + "/" + visitID.String(): patientID,
	}}
	assignments := &fakeAssignments{t: t, active: map[string]bool{
		assignKey(patientID, surgeon.ID): true,
	}}
	engine := newTestEngine(t, patients, assignments)

	outcome, err := engine.Authorize(context.Background(), surgeon, ObjectMedicalDetail, ActionUpdate,
		LookupTable(TableVisits, "id"), map[string]string{"id": visitID.String()})

	require.NoError(t, err)
	assert.Equal(t, DecisionGrant, outcome.Decision)
	assert.Equal(t, patientID, outcome.PatientID)
	assert.Equal(t, 1, patients.calls)
	assert.Equal(t, 1, assignments.calls)
}

func TestAuthorizeMissingTargetIsNotFoundNotDeny(t *testing.T) {
	surgeon := Actor{ID: uuid.New(), Role: RoleDentalSurgeon}
	engine := newTestEngine(t, &fakePatientLookup{t: t}, &fakeAssignments{t: t, forbade: true})

	outcome, err := engine.Authorize(context.Background(), surgeon, ObjectMedicalDetail, ActionUpdate,
		LookupTable(TableVisits, "id"), map[string]string{"id": uuid.New().String()})

	require.NoError(t, err)
	assert.Equal(t, DecisionNotFound, outcome.Decision)
}

func TestAuthorizeConditionalWithoutResolverFailsClosed(t *testing.T) {
	surgeon := Actor{ID: uuid.New(), Role: RoleDentalSurgeon}
	engine := newTestEngine(t, &fakePatientLookup{t: t, forbade: true}, &fakeAssignments{t: t, forbade: true})

	outcome, err := engine.Authorize(context.Background(), surgeon, ObjectMedicalDetail, ActionUpdate,
		nil, map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, outcome.Decision)
}

func TestAuthorizeAssignmentStoreErrorIsNeverAGrant(t *testing.T) {
	patientID := uuid.New()
	nurse := Actor{ID: uuid.New(), Role: RoleNurse}

	assignments := &fakeAssignments{t: t, err: fmt.Errorf("connection reset")}
	engine := newTestEngine(t, &fakePatientLookup{t: t}, assignments)

	outcome, err := engine.Authorize(context.Background(), nurse, ObjectPatient, ActionRead,
		DirectParam("id"), map[string]string{"id": patientID.String()})

	require.Error(t, err)
	assert.Equal(t, DecisionDeny, outcome.Decision)
}

func TestAuthorizeMalformedPatientParam(t *testing.T) {
	nurse := Actor{ID: uuid.New(), Role: RoleNurse}
	engine := newTestEngine(t, &fakePatientLookup{t: t}, &fakeAssignments{t: t, forbade: true})

	outcome, err := engine.Authorize(context.Background(), nurse, ObjectPatient, ActionRead,
		DirectParam("id"), map[string]string{"id": "not-a-uuid"})

	require.NoError(t, err)
	assert.Equal(t, DecisionNotFound, outcome.Decision)
}
