package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PrescriptionStatus string

const (
	PrescriptionStatusDraft     PrescriptionStatus = "draft"
	PrescriptionStatusIssued    PrescriptionStatus = "issued"
	PrescriptionStatusDispensed PrescriptionStatus = "dispensed"
)

type Prescription struct {
	Base
	PatientID       uuid.UUID          `db:"patient_id" json:"patient_id"`
	ClinicianID     uuid.UUID          `db:"clinician_id" json:"clinician_id"`
	MedicationsJSON json.RawMessage    `db:"medications" json:"-"`
	Medications     []Medication       `db:"-" json:"medications"`
	Notes           string             `db:"notes" json:"notes,omitempty"`
	Status          PrescriptionStatus `db:"status" json:"status"`
	IssuedAt        *time.Time         `db:"issued_at" json:"issued_at,omitempty"`
	DispensedAt     *time.Time         `db:"dispensed_at" json:"dispensed_at,omitempty"`
}

type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	DurationDays int    `json:"duration_days,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// MarshalMedications serializes the medications slice into the JSON
// column before persisting.
func (p *Prescription) MarshalMedications() error {
	data, err := json.Marshal(p.Medications)
	if err != nil {
		return err
	}
	p.MedicationsJSON = data
	return nil
}

// UnmarshalMedications hydrates the medications slice from the JSON
// column after loading.
func (p *Prescription) UnmarshalMedications() error {
	if len(p.MedicationsJSON) == 0 {
		p.Medications = nil
		return nil
	}
	return json.Unmarshal(p.MedicationsJSON, &p.Medications)
}

type CreatePrescriptionRequest struct {
	Medications []Medication `json:"medications" binding:"required,min=1,dive"`
	Notes       string       `json:"notes" binding:"max=2000"`
}

type PrescriptionFilters struct {
	Status    PrescriptionStatus `form:"status"`
	StartDate time.Time          `form:"start_date"`
	EndDate   time.Time          `form:"end_date"`
}
