package authz

import (
	"github.com/google/uuid"
)

// Role is the closed set of staff roles known to the clinic.
type Role string

const (
	RoleAdministrative Role = "ADMINISTRATIVE"
	RoleOrthodontist   Role = "ORTHODONTIST"
	RoleDentalSurgeon  Role = "DENTAL_SURGEON"
	RoleNurse          Role = "NURSE"
	RoleStudent        Role = "STUDENT"
	RoleReception      Role = "RECEPTION"
)

// Roles lists every valid staff role.
var Roles = []Role{
	RoleAdministrative,
	RoleOrthodontist,
	RoleDentalSurgeon,
	RoleNurse,
	RoleStudent,
	RoleReception,
}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ObjectType is the category of clinical data a route protects.
type ObjectType string

const (
	ObjectPatient       ObjectType = "PATIENT"
	ObjectMedicalDetail ObjectType = "MEDICAL_DETAIL"
	ObjectDocument      ObjectType = "DOCUMENT"
	ObjectClinicalNote  ObjectType = "CLINICAL_NOTE"
	ObjectQueueEntry    ObjectType = "QUEUE_ENTRY"
	ObjectTreatmentCase ObjectType = "TREATMENT_CASE"
	ObjectUserAccount   ObjectType = "USER_ACCOUNT"
	ObjectInventory     ObjectType = "INVENTORY_ITEM"
)

// Action is the operation attempted on an object.
type Action string

const (
	ActionRead    Action = "READ"
	ActionCreate  Action = "CREATE"
	ActionUpdate  Action = "UPDATE"
	ActionDelete  Action = "DELETE"
	ActionApprove Action = "APPROVE"
)

// DecisionMode is a matrix entry: how a (role, object, action) triple is
// decided. The zero value is ModeDeny so unknown triples fail closed.
type DecisionMode int

const (
	ModeDeny DecisionMode = iota
	ModeAllow
	ModeConditional
)

func (m DecisionMode) String() string {
	switch m {
	case ModeAllow:
		return "ALLOW"
	case ModeConditional:
		return "CONDITIONAL"
	default:
		return "DENY"
	}
}

// Decision is the outcome of evaluating a request.
type Decision int

const (
	DecisionDeny Decision = iota
	DecisionGrant
	DecisionNotFound
)

func (d Decision) String() string {
	switch d {
	case DecisionGrant:
		return "GRANT"
	case DecisionNotFound:
		return "NOT_FOUND"
	default:
		return "DENY"
	}
}

// Actor is the authenticated staff identity attached to a request. It is
// immutable for the request's lifetime.
type Actor struct {
	ID         uuid.UUID
	Role       Role
	Department string
	Status     string
}

// Outcome carries the decision plus the resolved patient ID (when one was
// resolved) so handlers can reuse it without a second lookup.
type Outcome struct {
	Decision  Decision
	PatientID uuid.UUID
}
