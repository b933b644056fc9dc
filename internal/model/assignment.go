package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment roles are narrower than staff roles: administrative and
// reception staff are never assigned to a care team, they hold broad
// access through the permission matrix instead.
const (
	AssignmentRoleOrthodontist = "ORTHODONTIST"
	AssignmentRoleSurgeon      = "SURGEON"
	AssignmentRoleNurse        = "NURSE"
	AssignmentRoleStudent      = "STUDENT"
)

// PatientAssignment makes a staff member an active member of a patient's
// care team. Rows are deactivated, never deleted, to preserve history.
// At most one active row may exist per (patient, user, assignment_role),
// enforced by a partial unique index on active = true.
type PatientAssignment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	AssignmentRole string    `db:"assignment_role" json:"assignment_role"`
	AssignedBy     uuid.UUID `db:"assigned_by" json:"assigned_by"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateAssignmentRequest struct {
	UserID         string `json:"user_id" binding:"required,uuid"`
	AssignmentRole string `json:"assignment_role" binding:"required,assignmentrole"`
}
