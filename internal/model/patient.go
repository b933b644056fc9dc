package model

import (
	"time"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	Address     string    `db:"address" json:"address"`
	Status      string    `db:"status" json:"status"`
}

type CreatePatientRequest struct {
	FirstName   string    `json:"first_name" binding:"required"`
	LastName    string    `json:"last_name" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Address     string    `json:"address"`
}

type UpdatePatientRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     *string    `json:"address"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

type PatientFilters struct {
	Status     string `json:"status" form:"status"`
	SearchTerm string `json:"search_term" form:"search_term"`
}
