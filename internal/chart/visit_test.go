package chart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalops/dental-admin-api/internal/model"
)

func obsAt(tooth string, created time.Time, appointmentID *uuid.UUID, notes string) model.Observation {
	return model.Observation{
		Base:          model.Base{ID: uuid.New(), CreatedAt: created},
		ToothNumber:   tooth,
		ConditionType: "Cavity",
		Notes:         notes,
		AppointmentID: appointmentID,
	}
}

func procAt(teeth string, created time.Time, appointmentID *uuid.UUID, status model.ProcedureStatus) model.Procedure {
	return model.Procedure{
		Base:          model.Base{ID: uuid.New(), CreatedAt: created},
		ToothNumbers:  teeth,
		Code:          "D2140",
		Name:          "Amalgam Filling",
		Status:        status,
		AppointmentID: appointmentID,
	}
}

func TestAggregateVisitsDeduplicatesMultiToothProcedures(t *testing.T) {
	created := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	proc := procAt("14, 15, 16", created, nil, model.ProcedureStatusPlanned)

	// The same procedure appears under each of its three teeth, as the
	// chart transport shape delivers it.
	teeth := []ToothRecord{
		{ToothNumber: "14", Procedures: []model.Procedure{proc}},
		{ToothNumber: "15", Procedures: []model.Procedure{proc}},
		{ToothNumber: "16", Procedures: []model.Procedure{proc}},
	}

	visits := AggregateVisits(teeth)
	require.Len(t, visits, 1)
	assert.Len(t, visits[0].Procedures, 1)
	assert.Equal(t, []string{"14", "15", "16"}, visits[0].Teeth)
}

func TestAggregateVisitsSortedByDateDescending(t *testing.T) {
	jan := uuid.New()
	feb := uuid.New()
	mar := uuid.New()

	teeth := []ToothRecord{{
		ToothNumber: "11",
		Observations: []model.Observation{
			obsAt("11", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), &jan, ""),
			obsAt("11", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), &mar, ""),
			obsAt("11", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), &feb, ""),
		},
	}}

	visits := AggregateVisits(teeth)
	require.Len(t, visits, 3)
	assert.Equal(t, mar.String(), visits[0].Key)
	assert.Equal(t, feb.String(), visits[1].Key)
	assert.Equal(t, jan.String(), visits[2].Key)
}

func TestAggregateVisitsDayFallbackGrouping(t *testing.T) {
	morning := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	afternoon := time.Date(2025, 4, 10, 15, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 4, 11, 9, 0, 0, 0, time.UTC)

	teeth := []ToothRecord{{
		ToothNumber: "21",
		Observations: []model.Observation{
			obsAt("21", morning, nil, ""),
			obsAt("21", afternoon, nil, ""),
			obsAt("21", nextDay, nil, ""),
		},
	}}

	visits := AggregateVisits(teeth)
	require.Len(t, visits, 2)
	assert.Equal(t, "2025-04-11", visits[0].Key)
	assert.Equal(t, "2025-04-10", visits[1].Key)
	assert.Len(t, visits[1].Observations, 2)
}

func TestAggregateVisitsNotesRollup(t *testing.T) {
	created := time.Date(2025, 5, 2, 11, 0, 0, 0, time.UTC)
	appt := uuid.New()

	proc := procAt("36", created, &appt, model.ProcedureStatusPlanned)
	proc.Notes = "local anaesthesia"

	teeth := []ToothRecord{{
		ToothNumber: "36",
		Observations: []model.Observation{
			obsAt("36", created, &appt, "deep cavity distal"),
			obsAt("36", created, &appt, ""),
		},
		Procedures: []model.Procedure{proc},
	}}

	visits := AggregateVisits(teeth)
	require.Len(t, visits, 1)
	assert.Equal(t, []string{"#36: deep cavity distal", "Procedure: local anaesthesia"}, visits[0].Notes)
}

func TestAggregateVisitsStickyCompletedStatus(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	appt := uuid.New()

	teeth := []ToothRecord{{
		ToothNumber: "46",
		Procedures: []model.Procedure{
			procAt("46", created, &appt, model.ProcedureStatusCompleted),
			procAt("46", created.Add(time.Hour), &appt, model.ProcedureStatusInProgress),
			procAt("46", created.Add(2*time.Hour), &appt, model.ProcedureStatusPlanned),
		},
	}}

	visits := AggregateVisits(teeth)
	require.Len(t, visits, 1)
	assert.Equal(t, VisitStatusCompleted, visits[0].Status)
}

func TestAggregateVisitsDefaultStatusPlanned(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	teeth := []ToothRecord{{
		ToothNumber:  "46",
		Observations: []model.Observation{obsAt("46", created, nil, "")},
	}}

	visits := AggregateVisits(teeth)
	require.Len(t, visits, 1)
	assert.Equal(t, VisitStatusPlanned, visits[0].Status)
}

func TestAggregateVisitsSkipsRecordsWithoutIdentity(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	missingID := obsAt("11", created, nil, "")
	missingID.ID = uuid.Nil
	missingDate := obsAt("11", time.Time{}, nil, "")

	teeth := []ToothRecord{{
		ToothNumber:  "11",
		Observations: []model.Observation{missingID, missingDate, obsAt("11", created, nil, "")},
	}}

	visits, skipped := AggregateVisitsStrict(teeth)
	require.Len(t, visits, 1)
	assert.Len(t, visits[0].Observations, 1)
	assert.Equal(t, 2, skipped)
}

func TestAggregateVisitsEndToEndScenario(t *testing.T) {
	appt := uuid.New()

	obs := model.Observation{
		Base:              model.Base{ID: uuid.New(), CreatedAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)},
		ToothNumber:       "16",
		ConditionType:     "Cavity",
		Severity:          "Moderate",
		TreatmentRequired: true,
		TreatmentDone:     false,
		AppointmentID:     &appt,
	}
	proc := model.Procedure{
		Base:          model.Base{ID: uuid.New(), CreatedAt: time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)},
		ToothNumbers:  "16",
		Name:          "Amalgam Filling",
		Status:        model.ProcedureStatusCompleted,
		AppointmentID: &appt,
	}

	teeth := []ToothRecord{{
		ToothNumber:  "16",
		Observations: []model.Observation{obs},
		Procedures:   []model.Procedure{proc},
	}}

	visits := AggregateVisits(teeth)
	require.Len(t, visits, 1)
	assert.Equal(t, appt.String(), visits[0].Key)
	assert.Len(t, visits[0].Observations, 1)
	assert.Len(t, visits[0].Procedures, 1)
	assert.Equal(t, []string{"16"}, visits[0].Teeth)
	assert.Equal(t, VisitStatusCompleted, visits[0].Status)

	// The procedure dominates the observation in the per-tooth status.
	assert.Equal(t, StatusCompleted, ResolveToothStatus(teeth[0].Observations, teeth[0].Procedures))

	summaries := AggregateToothSummaries(teeth)
	require.Len(t, summaries, 1)
	assert.Equal(t, "16", summaries[0].ToothNumber)
	assert.Equal(t, StatusCompleted, summaries[0].OverallStatus)
}
