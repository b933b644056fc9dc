package model

import (
	"github.com/google/uuid"
)

const (
	DocumentTypeRadiograph = "radiograph"
	DocumentTypeReferral   = "referral"
	DocumentTypeConsent    = "consent"
	DocumentTypeOther      = "other"
)

// Document is stored file metadata (radiographs and similar); the file
// bytes themselves live in external storage.
type Document struct {
	Base
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	UploadedBy  uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	Type        string    `db:"type" json:"type"`
	Name        string    `db:"name" json:"name"`
	ContentType string    `db:"content_type" json:"content_type"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
}

type CreateDocumentRequest struct {
	Type        string `json:"type" binding:"required,oneof=radiograph referral consent other"`
	Name        string `json:"name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	StoragePath string `json:"storage_path" binding:"required"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
}
