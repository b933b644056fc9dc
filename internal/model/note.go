package model

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalNote is authored during a visit. Only the author may change or
// remove it; verification is a separate action reserved to clinical roles.
type ClinicalNote struct {
	Base
	VisitID    uuid.UUID  `db:"visit_id" json:"visit_id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	AuthorID   uuid.UUID  `db:"author_id" json:"author_id"`
	Body       string     `db:"body" json:"body"`
	Verified   bool       `db:"verified" json:"verified"`
	VerifiedBy *uuid.UUID `db:"verified_by" json:"verified_by,omitempty"`
	VerifiedAt *time.Time `db:"verified_at" json:"verified_at,omitempty"`
}

type CreateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

type UpdateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}
