package chart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dentalops/dental-admin-api/internal/model"
)

func newObservation(tooth string, treatmentRequired, treatmentDone bool) model.Observation {
	return model.Observation{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		ToothNumber:       tooth,
		ConditionType:     "Cavity",
		TreatmentRequired: treatmentRequired,
		TreatmentDone:     treatmentDone,
	}
}

func newProcedure(teeth string, status model.ProcedureStatus) model.Procedure {
	return model.Procedure{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
		},
		ToothNumbers: teeth,
		Code:         "D2140",
		Name:         "Amalgam Filling",
		Status:       status,
	}
}

func TestResolveToothStatus(t *testing.T) {
	tests := []struct {
		name         string
		observations []model.Observation
		procedures   []model.Procedure
		want         ToothStatus
	}{
		{
			name: "all procedures completed",
			procedures: []model.Procedure{
				newProcedure("16", model.ProcedureStatusCompleted),
				newProcedure("16", model.ProcedureStatusCompleted),
			},
			want: StatusCompleted,
		},
		{
			name: "incompleteness dominates completion",
			procedures: []model.Procedure{
				newProcedure("16", model.ProcedureStatusCompleted),
				newProcedure("16", model.ProcedureStatusPlanned),
			},
			want: StatusPlanned,
		},
		{
			name: "in progress outranks planned",
			procedures: []model.Procedure{
				newProcedure("16", model.ProcedureStatusPlanned),
				newProcedure("16", model.ProcedureStatusInProgress),
			},
			want: StatusInProgress,
		},
		{
			name:         "procedures outrank observations",
			observations: []model.Observation{newObservation("16", true, false)},
			procedures:   []model.Procedure{newProcedure("16", model.ProcedureStatusCompleted)},
			want:         StatusCompleted,
		},
		{
			name:         "untreated required observation",
			observations: []model.Observation{newObservation("16", true, false)},
			want:         StatusNeedsAttention,
		},
		{
			name:         "treated required observation",
			observations: []model.Observation{newObservation("16", true, true)},
			want:         StatusObservation,
		},
		{
			name:         "plain observation",
			observations: []model.Observation{newObservation("16", false, false)},
			want:         StatusObservation,
		},
		{
			name: "no records",
			want: StatusHealthy,
		},
		{
			name:         "only cancelled procedures fall through to observations",
			observations: []model.Observation{newObservation("16", true, false)},
			procedures:   []model.Procedure{newProcedure("16", model.ProcedureStatusCancelled)},
			want:         StatusNeedsAttention,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveToothStatus(tt.observations, tt.procedures)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayCategoryMapping(t *testing.T) {
	assert.Equal(t, CategorySuccess, StatusCompleted.DisplayCategory())
	assert.Equal(t, CategoryInfo, StatusInProgress.DisplayCategory())
	assert.Equal(t, CategoryError, StatusNeedsAttention.DisplayCategory())
	assert.Equal(t, CategoryWarning, StatusPlanned.DisplayCategory())
	assert.Equal(t, CategoryWarning, StatusObservation.DisplayCategory())
	assert.Equal(t, CategoryNeutral, StatusHealthy.DisplayCategory())
}

func TestResolveToothStatusDeterministic(t *testing.T) {
	obs := []model.Observation{newObservation("16", true, false)}
	procs := []model.Procedure{newProcedure("16", model.ProcedureStatusPlanned)}

	first := ResolveToothStatus(obs, procs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveToothStatus(obs, procs))
	}
}
