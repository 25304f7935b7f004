package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ProcedureStatus string

const (
	ProcedureStatusPlanned    ProcedureStatus = "planned"
	ProcedureStatusInProgress ProcedureStatus = "in_progress"
	ProcedureStatusCompleted  ProcedureStatus = "completed"
	ProcedureStatusCancelled  ProcedureStatus = "cancelled"
)

// ProcedureCodeCustom is the sentinel code for procedures without an
// external CDT code; the human-readable name carries the custom name.
const ProcedureCodeCustom = "custom"

// Procedure is a planned or performed clinical action. It may span
// several teeth; ToothNumbers is the comma-separated transport form.
type Procedure struct {
	Base
	PatientID     uuid.UUID       `db:"patient_id" json:"patient_id"`
	ToothNumbers  string          `db:"tooth_numbers" json:"tooth_numbers"`
	Code          string          `db:"procedure_code" json:"procedure_code"`
	Name          string          `db:"procedure_name" json:"procedure_name"`
	Status        ProcedureStatus `db:"status" json:"status"`
	ScheduledAt   time.Time       `db:"scheduled_at" json:"scheduled_at"`
	CompletedDate *time.Time      `db:"completed_date" json:"completed_date,omitempty"`
	EstimatedCost *float64        `db:"estimated_cost" json:"estimated_cost,omitempty"`
	ActualCost    *float64        `db:"actual_cost" json:"actual_cost,omitempty"`
	Notes         string          `db:"procedure_notes" json:"procedure_notes,omitempty"`
	AppointmentID *uuid.UUID      `db:"appointment_id" json:"appointment_id,omitempty"`
	// ObservationID links a procedure back to the finding that
	// prompted it, when there is one.
	ObservationID *uuid.UUID `db:"observation_id" json:"observation_id,omitempty"`
}

// TeethList splits the comma-separated tooth numbers into trimmed
// tokens, dropping empties.
func (p *Procedure) TeethList() []string {
	parts := strings.Split(p.ToothNumbers, ",")
	teeth := make([]string, 0, len(parts))
	for _, part := range parts {
		tooth := strings.TrimSpace(part)
		if tooth != "" {
			teeth = append(teeth, tooth)
		}
	}
	return teeth
}

// CanTransition reports whether moving to the requested status is a
// legal lifecycle step. Completion and cancellation are terminal.
func (p *Procedure) CanTransition(to ProcedureStatus) bool {
	switch p.Status {
	case ProcedureStatusPlanned:
		return to == ProcedureStatusInProgress || to == ProcedureStatusCompleted || to == ProcedureStatusCancelled
	case ProcedureStatusInProgress:
		return to == ProcedureStatusCompleted
	default:
		return false
	}
}

type CreateProcedureRequest struct {
	ToothNumbers  string     `json:"tooth_numbers" binding:"required,fdi_teeth"`
	Code          string     `json:"procedure_code" binding:"required"`
	Name          string     `json:"procedure_name" binding:"required,max=255"`
	ScheduledAt   time.Time  `json:"scheduled_at" binding:"required"`
	EstimatedCost *float64   `json:"estimated_cost" binding:"omitempty,gte=0"`
	Notes         string     `json:"procedure_notes" binding:"max=2000"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	ObservationID *uuid.UUID `json:"observation_id"`
}

type UpdateProcedureRequest struct {
	Status        *ProcedureStatus `json:"status" binding:"omitempty,oneof=planned in_progress completed cancelled"`
	CompletedDate *time.Time       `json:"completed_date"`
	EstimatedCost *float64         `json:"estimated_cost" binding:"omitempty,gte=0"`
	ActualCost    *float64         `json:"actual_cost" binding:"omitempty,gte=0"`
	Notes         *string          `json:"procedure_notes" binding:"omitempty,max=2000"`
}

type ProcedureFilters struct {
	ToothNumber string          `form:"tooth_number"`
	Status      ProcedureStatus `form:"status"`
	StartDate   time.Time       `form:"start_date"`
	EndDate     time.Time       `form:"end_date"`
}
