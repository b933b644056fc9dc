package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTargetNotFound reports that the object named by the request does not
// exist. The engine maps it to NOT_FOUND, which callers must surface as a
// 404 and never fold into a plain deny.
var ErrTargetNotFound = errors.New("target object not found")

// Tables whose rows carry a patient_id column and may back an indirect
// resolver. The set is closed so the resolution path stays auditable.
const (
	TableVisits         = "visits"
	TableClinicalNotes  = "clinical_notes"
	TableDocuments      = "documents"
	TableQueueEntries   = "queue_entries"
	TableTreatmentCases = "treatment_cases"
)

// PatientLookup resolves the owning patient of a row in one of the
// tables above. Implementations return ErrTargetNotFound when no row
// exists.
type PatientLookup interface {
	PatientIDFor(ctx context.Context, table string, id uuid.UUID) (uuid.UUID, error)
}

// AssignmentChecker reports whether an active care-team assignment links
// the patient to the staff member.
type AssignmentChecker interface {
	ExistsActive(ctx context.Context, patientID, userID uuid.UUID) (bool, error)
}

type resolverKind int

const (
	resolverDirect resolverKind = iota
	resolverLookup
)

// PatientResolver is a per-route strategy for finding which patient the
// request's target belongs to. Only two variants exist: the patient ID
// is itself a path parameter, or the target's own ID is a path parameter
// and its row names the patient.
type PatientResolver struct {
	kind  resolverKind
	param string
	table string
}

// DirectParam resolves the patient ID from the named path parameter.
func DirectParam(param string) *PatientResolver {
	return &PatientResolver{kind: resolverDirect, param: param}
}

// LookupTable resolves the target's ID from the named path parameter and
// looks up its patient_id in the given table.
func LookupTable(table, param string) *PatientResolver {
	return &PatientResolver{kind: resolverLookup, param: param, table: table}
}
