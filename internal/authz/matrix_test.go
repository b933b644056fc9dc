package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionModeFailsClosedForUndefinedTriples(t *testing.T) {
	m := DefaultMatrix()

	// Triples with no explicit entry must deny.
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleReception, ObjectClinicalNote, ActionRead))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleStudent, ObjectUserAccount, ActionRead))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleNurse, ObjectMedicalDetail, ActionDelete))
	assert.Equal(t, ModeDeny, m.DecisionMode(Role("GARDENER"), ObjectPatient, ActionRead))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleAdministrative, ObjectType("BILLING"), ActionRead))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleOrthodontist, ObjectPatient, Action("EXPORT")))
}

func TestDecisionModeIsTotalOverEnumerations(t *testing.T) {
	m := DefaultMatrix()
	objects := []ObjectType{
		ObjectPatient, ObjectMedicalDetail, ObjectDocument, ObjectClinicalNote,
		ObjectQueueEntry, ObjectTreatmentCase, ObjectUserAccount, ObjectInventory,
	}
	actions := []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionApprove}

	for _, role := range Roles {
		for _, object := range objects {
			for _, action := range actions {
				mode := m.DecisionMode(role, object, action)
				assert.Contains(t, []DecisionMode{ModeDeny, ModeAllow, ModeConditional}, mode)
			}
		}
	}
}

func TestBroadRolesAreUnconditional(t *testing.T) {
	m := DefaultMatrix()

	assert.Equal(t, ModeAllow, m.DecisionMode(RoleAdministrative, ObjectPatient, ActionRead))
	assert.Equal(t, ModeAllow, m.DecisionMode(RoleAdministrative, ObjectUserAccount, ActionDelete))
	assert.Equal(t, ModeAllow, m.DecisionMode(RoleReception, ObjectQueueEntry, ActionCreate))
	assert.Equal(t, ModeAllow, m.DecisionMode(RoleReception, ObjectPatient, ActionUpdate))
}

func TestClinicalRolesAreConditional(t *testing.T) {
	m := DefaultMatrix()

	assert.Equal(t, ModeConditional, m.DecisionMode(RoleOrthodontist, ObjectClinicalNote, ActionUpdate))
	assert.Equal(t, ModeConditional, m.DecisionMode(RoleDentalSurgeon, ObjectTreatmentCase, ActionCreate))
	assert.Equal(t, ModeConditional, m.DecisionMode(RoleNurse, ObjectMedicalDetail, ActionUpdate))
	assert.Equal(t, ModeConditional, m.DecisionMode(RoleStudent, ObjectClinicalNote, ActionRead))
}

func TestNoteVerificationReservedToClinicians(t *testing.T) {
	m := DefaultMatrix()

	assert.Equal(t, ModeConditional, m.DecisionMode(RoleOrthodontist, ObjectClinicalNote, ActionApprove))
	assert.Equal(t, ModeConditional, m.DecisionMode(RoleDentalSurgeon, ObjectClinicalNote, ActionApprove))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleAdministrative, ObjectClinicalNote, ActionApprove))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleNurse, ObjectClinicalNote, ActionApprove))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleStudent, ObjectClinicalNote, ActionApprove))
	assert.Equal(t, ModeDeny, m.DecisionMode(RoleReception, ObjectClinicalNote, ActionApprove))
}
