package model

import (
	"time"

	"github.com/google/uuid"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	ClinicID    uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	Email       string     `db:"email" json:"email"`
	Phone       string     `db:"phone" json:"phone,omitempty"`
	DateOfBirth time.Time  `db:"date_of_birth" json:"date_of_birth"`
	Gender      string     `db:"gender" json:"gender,omitempty"`
	Address     string     `db:"address" json:"address,omitempty"`
	Allergies   string     `db:"allergies" json:"allergies,omitempty"`
	Notes       string     `db:"notes" json:"notes,omitempty"`
	Status      string     `db:"status" json:"status"`
	LastVisitAt *time.Time `db:"last_visit_at" json:"last_visit_at,omitempty"`
}

type CreatePatientRequest struct {
	ClinicID    string    `json:"clinic_id" binding:"required,uuid"`
	FirstName   string    `json:"first_name" binding:"required"`
	LastName    string    `json:"last_name" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address"`
	Allergies   string    `json:"allergies"`
	Notes       string    `json:"notes"`
}

type UpdatePatientRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Address     *string    `json:"address"`
	Allergies   *string    `json:"allergies"`
	Notes       *string    `json:"notes"`
	Status      *string    `json:"status"`
}

type PatientFilters struct {
	ClinicID   uuid.UUID `json:"clinic_id" form:"clinic_id"`
	SearchTerm string    `json:"search_term" form:"search_term"`
	Status     string    `json:"status" form:"status"`
}
