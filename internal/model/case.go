package model

import (
	"time"

	"github.com/google/uuid"
)

type CaseStatus string

const (
	CaseStatusOpen   CaseStatus = "open"
	CaseStatusClosed CaseStatus = "closed"
)

// TreatmentCase groups the visits of one course of treatment, for example
// a full orthodontic alignment plan.
type TreatmentCase struct {
	Base
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	OpenedBy  uuid.UUID  `db:"opened_by" json:"opened_by"`
	Title     string     `db:"title" json:"title"`
	Plan      string     `db:"plan" json:"plan"`
	Status    CaseStatus `db:"status" json:"status"`
	ClosedAt  *time.Time `db:"closed_at" json:"closed_at,omitempty"`
}

type CreateCaseRequest struct {
	Title string `json:"title" binding:"required"`
	Plan  string `json:"plan"`
}

type UpdateCaseRequest struct {
	Title *string `json:"title"`
	Plan  *string `json:"plan"`
}
