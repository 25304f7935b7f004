package chart

import (
	"github.com/dentalops/dental-admin-api/internal/model"
)

// ToothStatus is the derived display status of a single tooth.
type ToothStatus string

const (
	StatusHealthy        ToothStatus = "healthy"
	StatusObservation    ToothStatus = "observation"
	StatusPlanned        ToothStatus = "planned"
	StatusInProgress     ToothStatus = "in_progress"
	StatusCompleted      ToothStatus = "completed"
	StatusNeedsAttention ToothStatus = "needs_attention"
)

// DisplayCategory is the presentational color/icon bucket a status
// maps to. The six-way status enum is the contract; this mapping may
// vary by UI toolkit.
type DisplayCategory string

const (
	CategorySuccess DisplayCategory = "success"
	CategoryInfo    DisplayCategory = "info"
	CategoryWarning DisplayCategory = "warning"
	CategoryError   DisplayCategory = "error"
	CategoryNeutral DisplayCategory = "neutral"
)

// DisplayCategory maps a tooth status onto its color/icon bucket.
func (s ToothStatus) DisplayCategory() DisplayCategory {
	switch s {
	case StatusCompleted:
		return CategorySuccess
	case StatusInProgress:
		return CategoryInfo
	case StatusNeedsAttention:
		return CategoryError
	case StatusPlanned, StatusObservation:
		return CategoryWarning
	default:
		return CategoryNeutral
	}
}

// ResolveToothStatus derives a single display status from a tooth's
// raw observations and procedures. The priority chain is ordered and
// the first match wins: a tooth can satisfy several conditions at
// once, and procedures always outrank observations. A fully completed
// procedure set is the most advanced state, but any incompleteness at
// all downgrades the tooth to the lesser status.
//
// The same function backs both the interactive chart coloring and the
// summary table; there is deliberately a single implementation.
func ResolveToothStatus(observations []model.Observation, procedures []model.Procedure) ToothStatus {
	if len(procedures) > 0 {
		completed := 0
		inProgress := false
		planned := false
		for _, p := range procedures {
			switch p.Status {
			case model.ProcedureStatusCompleted:
				completed++
			case model.ProcedureStatusInProgress:
				inProgress = true
			case model.ProcedureStatusPlanned:
				planned = true
			}
		}

		switch {
		case completed == len(procedures):
			return StatusCompleted
		case inProgress:
			return StatusInProgress
		case planned:
			return StatusPlanned
		}
		// Only cancelled (or mixed cancelled/completed) procedures
		// remain: fall through to the observation checks.
	}

	for _, o := range observations {
		if o.TreatmentRequired && !o.TreatmentDone {
			return StatusNeedsAttention
		}
	}

	if len(observations) > 0 {
		return StatusObservation
	}

	return StatusHealthy
}
