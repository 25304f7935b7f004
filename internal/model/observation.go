package model

import (
	"time"

	"github.com/google/uuid"
)

// Observation is one clinical finding on one tooth at one point in
// time. The tooth number is immutable once the record exists; only the
// treatment fields update in place.
type Observation struct {
	Base
	PatientID         uuid.UUID  `db:"patient_id" json:"patient_id"`
	ToothNumber       string     `db:"tooth_number" json:"tooth_number"`
	ConditionType     string     `db:"condition_type" json:"condition_type"`
	Severity          string     `db:"severity" json:"severity,omitempty"`
	ToothSurface      string     `db:"tooth_surface" json:"tooth_surface,omitempty"`
	Notes             string     `db:"observation_notes" json:"observation_notes,omitempty"`
	TreatmentRequired bool       `db:"treatment_required" json:"treatment_required"`
	TreatmentDone     bool       `db:"treatment_done" json:"treatment_done"`
	TreatmentDate     *time.Time `db:"treatment_date" json:"treatment_date,omitempty"`
	AppointmentID     *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`

	// LegacyProcedure is the older single-embedded-procedure shape.
	// It is folded into Procedures at the data-access boundary and is
	// never read by aggregation code.
	LegacyProcedure *Procedure  `db:"-" json:"procedure,omitempty"`
	Procedures      []Procedure `db:"-" json:"procedures,omitempty"`
}

// NormalizeProcedures folds the legacy single-procedure shape into the
// Procedures slice so downstream code only ever sees one
// representation.
func (o *Observation) NormalizeProcedures() {
	if o.LegacyProcedure == nil {
		return
	}
	for _, p := range o.Procedures {
		if p.ID == o.LegacyProcedure.ID {
			o.LegacyProcedure = nil
			return
		}
	}
	o.Procedures = append(o.Procedures, *o.LegacyProcedure)
	o.LegacyProcedure = nil
}

// SeverityLabel returns the severity for display, degrading gracefully
// when the optional field is absent.
func (o *Observation) SeverityLabel() string {
	if o.Severity == "" {
		return "Not specified"
	}
	return o.Severity
}

// SurfaceLabel returns the tooth surface for display.
func (o *Observation) SurfaceLabel() string {
	if o.ToothSurface == "" {
		return "Not specified"
	}
	return o.ToothSurface
}

type CreateObservationRequest struct {
	ToothNumber       string     `json:"tooth_number" binding:"required,fdi_tooth"`
	ConditionType     string     `json:"condition_type" binding:"required,condition_type"`
	Severity          string     `json:"severity" binding:"omitempty,severity"`
	ToothSurface      string     `json:"tooth_surface" binding:"omitempty,tooth_surface"`
	Notes             string     `json:"observation_notes" binding:"max=2000"`
	TreatmentRequired bool       `json:"treatment_required"`
	AppointmentID     *uuid.UUID `json:"appointment_id"`
}

type UpdateObservationRequest struct {
	ConditionType     *string    `json:"condition_type" binding:"omitempty,condition_type"`
	Severity          *string    `json:"severity" binding:"omitempty,severity"`
	ToothSurface      *string    `json:"tooth_surface" binding:"omitempty,tooth_surface"`
	Notes             *string    `json:"observation_notes" binding:"omitempty,max=2000"`
	TreatmentRequired *bool      `json:"treatment_required"`
	TreatmentDone     *bool      `json:"treatment_done"`
	TreatmentDate     *time.Time `json:"treatment_date"`
}

type ObservationFilters struct {
	ToothNumber   string    `form:"tooth_number"`
	ConditionType string    `form:"condition_type"`
	StartDate     time.Time `form:"start_date"`
	EndDate       time.Time `form:"end_date"`
}
