package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Visit is a clinical encounter: anamnesis, examination findings and the
// dental chart updates recorded during one appointment.
type Visit struct {
	Base
	PatientID   uuid.UUID       `db:"patient_id" json:"patient_id"`
	ClinicianID uuid.UUID       `db:"clinician_id" json:"clinician_id"`
	VisitDate   time.Time       `db:"visit_date" json:"visit_date"`
	Reason      string          `db:"reason" json:"reason"`
	Findings    string          `db:"findings" json:"findings"`
	DentalChart json.RawMessage `db:"dental_chart" json:"dental_chart"`
}

type CreateVisitRequest struct {
	VisitDate   time.Time       `json:"visit_date" binding:"required"`
	Reason      string          `json:"reason" binding:"required"`
	Findings    string          `json:"findings"`
	DentalChart json.RawMessage `json:"dental_chart"`
}

type UpdateVisitRequest struct {
	Reason      *string         `json:"reason"`
	Findings    *string         `json:"findings"`
	DentalChart json.RawMessage `json:"dental_chart"`
}
