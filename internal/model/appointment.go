package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is the persisted visit entity. Observations and
// procedures reference it by ID, which is what the chart visit
// grouping keys on.
type Appointment struct {
	Base
	ClinicID     uuid.UUID         `db:"clinic_id" json:"clinic_id"`
	ClinicianID  uuid.UUID         `db:"clinician_id" json:"clinician_id"`
	PatientID    uuid.UUID         `db:"patient_id" json:"patient_id"`
	StartTime    time.Time         `db:"start_time" json:"start_time"`
	EndTime      time.Time         `db:"end_time" json:"end_time"`
	Status       AppointmentStatus `db:"status" json:"status"`
	Notes        string            `db:"notes" json:"notes,omitempty"`
	CancelReason *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

type CreateAppointmentRequest struct {
	ClinicID    string    `json:"clinic_id" binding:"required,uuid"`
	ClinicianID string    `json:"clinician_id" binding:"required,uuid"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

type AppointmentFilters struct {
	ClinicID    uuid.UUID         `form:"clinic_id"`
	ClinicianID uuid.UUID         `form:"clinician_id"`
	PatientID   uuid.UUID         `form:"patient_id"`
	Status      AppointmentStatus `form:"status"`
	StartDate   time.Time         `form:"start_date"`
	EndDate     time.Time         `form:"end_date"`
}
