package authz

// matrixKey identifies one (role, object, action) triple.
type matrixKey struct {
	role   Role
	object ObjectType
	action Action
}

// Matrix is the single source of "who can do what kind of thing". It is
// built once at process start and injected into the engine; no other
// component may hardcode a role check. Lookups are pure: no I/O, total
// over the enumerations, and fail closed for undefined triples.
type Matrix struct {
	rules map[matrixKey]DecisionMode
}

// DecisionMode returns the entry for the triple, or ModeDeny when none
// is defined.
func (m *Matrix) DecisionMode(role Role, object ObjectType, action Action) DecisionMode {
	return m.rules[matrixKey{role: role, object: object, action: action}]
}

// Len reports the number of explicit entries, exposed for sanity checks.
func (m *Matrix) Len() int {
	return len(m.rules)
}

func (m *Matrix) set(mode DecisionMode, role Role, object ObjectType, actions ...Action) {
	for _, action := range actions {
		m.rules[matrixKey{role: role, object: object, action: action}] = mode
	}
}

func (m *Matrix) allow(role Role, object ObjectType, actions ...Action) {
	m.set(ModeAllow, role, object, actions...)
}

func (m *Matrix) conditional(role Role, object ObjectType, actions ...Action) {
	m.set(ModeConditional, role, object, actions...)
}

// DefaultMatrix builds the clinic's permission policy.
//
// Administrative and reception staff hold broad, unconditional rights on
// the object types open to them and are never care-team assignees.
// Clinical roles get CONDITIONAL entries: the engine grants only when an
// active assignment links the actor to the target patient. Students are
// the narrowest clinical role, also conditional, so the generic
// assignment check covers them without a separate code path.
func DefaultMatrix() *Matrix {
	m := &Matrix{rules: make(map[matrixKey]DecisionMode)}

	crud := []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

	// Administrative: everything except clinical-note verification, which
	// stays with clinical staff.
	m.allow(RoleAdministrative, ObjectPatient, crud...)
	m.allow(RoleAdministrative, ObjectMedicalDetail, crud...)
	m.allow(RoleAdministrative, ObjectDocument, crud...)
	m.allow(RoleAdministrative, ObjectClinicalNote, crud...)
	m.allow(RoleAdministrative, ObjectQueueEntry, crud...)
	m.allow(RoleAdministrative, ObjectTreatmentCase, crud...)
	m.allow(RoleAdministrative, ObjectUserAccount, crud...)
	m.allow(RoleAdministrative, ObjectInventory, crud...)

	// Reception: demographics, scheduling and stock, no clinical data.
	m.allow(RoleReception, ObjectPatient, ActionRead, ActionCreate, ActionUpdate)
	m.allow(RoleReception, ObjectQueueEntry, crud...)
	m.allow(RoleReception, ObjectInventory, ActionRead, ActionUpdate)

	// Orthodontists and dental surgeons: full clinical access to their
	// own assigned patients.
	for _, role := range []Role{RoleOrthodontist, RoleDentalSurgeon} {
		m.conditional(role, ObjectPatient, ActionRead, ActionUpdate)
		m.conditional(role, ObjectMedicalDetail, crud...)
		m.conditional(role, ObjectDocument, crud...)
		m.conditional(role, ObjectClinicalNote, crud...)
		m.conditional(role, ObjectClinicalNote, ActionApprove)
		m.conditional(role, ObjectQueueEntry, ActionRead, ActionCreate, ActionUpdate)
		m.conditional(role, ObjectTreatmentCase, crud...)
	}

	// Nurses: read and record on assigned patients, no deletions, no
	// note verification.
	m.conditional(RoleNurse, ObjectPatient, ActionRead)
	m.conditional(RoleNurse, ObjectMedicalDetail, ActionRead, ActionUpdate)
	m.conditional(RoleNurse, ObjectDocument, ActionRead, ActionCreate)
	m.conditional(RoleNurse, ObjectClinicalNote, ActionRead, ActionCreate)
	m.conditional(RoleNurse, ObjectQueueEntry, ActionRead, ActionUpdate)
	m.conditional(RoleNurse, ObjectTreatmentCase, ActionRead)

	// Students: observe assigned patients, draft notes.
	m.conditional(RoleStudent, ObjectPatient, ActionRead)
	m.conditional(RoleStudent, ObjectMedicalDetail, ActionRead)
	m.conditional(RoleStudent, ObjectDocument, ActionRead)
	m.conditional(RoleStudent, ObjectClinicalNote, ActionRead, ActionCreate)
	m.conditional(RoleStudent, ObjectQueueEntry, ActionRead)
	m.conditional(RoleStudent, ObjectTreatmentCase, ActionRead)

	return m
}
