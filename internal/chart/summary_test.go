package chart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalops/dental-admin-api/internal/model"
)

func TestAggregateToothSummariesFiltersEmptyTeeth(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	teeth := []ToothRecord{
		{ToothNumber: "11"},
		{ToothNumber: "16", Observations: []model.Observation{obsAt("16", created, nil, "")}},
		{ToothNumber: "21"},
	}

	summaries := AggregateToothSummaries(teeth)
	require.Len(t, summaries, 1)
	assert.Equal(t, "16", summaries[0].ToothNumber)
}

func TestAggregateToothSummariesSortedNumerically(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	teeth := []ToothRecord{
		{ToothNumber: "46", Observations: []model.Observation{obsAt("46", created, nil, "")}},
		{ToothNumber: "11", Observations: []model.Observation{obsAt("11", created, nil, "")}},
		{ToothNumber: "25", Observations: []model.Observation{obsAt("25", created, nil, "")}},
	}

	summaries := AggregateToothSummaries(teeth)
	require.Len(t, summaries, 3)
	assert.Equal(t, "11", summaries[0].ToothNumber)
	assert.Equal(t, "25", summaries[1].ToothNumber)
	assert.Equal(t, "46", summaries[2].ToothNumber)
}

func TestAggregateToothSummariesMultiToothProcedure(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	proc := procAt("14, 15, 16", created, nil, model.ProcedureStatusPlanned)

	teeth := []ToothRecord{
		{ToothNumber: "14", Procedures: []model.Procedure{proc}},
		{ToothNumber: "15", Procedures: []model.Procedure{proc}},
		{ToothNumber: "16", Procedures: []model.Procedure{proc}},
	}

	summaries := AggregateToothSummaries(teeth)
	// The procedure contributes to all three summaries but only once
	// within each.
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.Len(t, s.Procedures, 1)
		assert.Equal(t, StatusPlanned, s.OverallStatus)
	}
}

func TestAggregateToothSummariesDeduplicatesWithinTooth(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	proc := procAt("16", created, nil, model.ProcedureStatusCompleted)

	teeth := []ToothRecord{{
		ToothNumber: "16",
		Procedures:  []model.Procedure{proc, proc},
	}}

	summaries := AggregateToothSummaries(teeth)
	require.Len(t, summaries, 1)
	assert.Len(t, summaries[0].Procedures, 1)
	assert.Equal(t, StatusCompleted, summaries[0].OverallStatus)
}

func TestAggregateToothSummariesAgreesWithResolver(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	teeth := []ToothRecord{{
		ToothNumber:  "36",
		Observations: []model.Observation{newObservation("36", true, false)},
		Procedures: []model.Procedure{
			procAt("36", created, nil, model.ProcedureStatusCompleted),
			procAt("36", created, nil, model.ProcedureStatusPlanned),
		},
	}}

	summaries := AggregateToothSummaries(teeth)
	require.Len(t, summaries, 1)
	assert.Equal(t,
		ResolveToothStatus(summaries[0].Observations, summaries[0].Procedures),
		summaries[0].OverallStatus)
	assert.Equal(t, StatusPlanned, summaries[0].OverallStatus)
}

func TestStats(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	apptA := uuid.New()
	apptB := uuid.New()

	cost := 120.0
	actual := 135.5
	multi := procAt("14, 15", created, &apptA, model.ProcedureStatusCompleted)
	multi.EstimatedCost = &cost
	multi.ActualCost = &actual

	teeth := []ToothRecord{
		{
			ToothNumber:  "14",
			Observations: []model.Observation{obsAt("14", created, &apptA, "")},
			Procedures:   []model.Procedure{multi},
		},
		{
			ToothNumber: "15",
			Procedures:  []model.Procedure{multi},
		},
		{
			ToothNumber:  "21",
			Observations: []model.Observation{obsAt("21", created.AddDate(0, 0, 7), &apptB, "")},
		},
	}

	visits := AggregateVisits(teeth)
	summaries := AggregateToothSummaries(teeth)
	stats := Stats(visits, summaries)

	assert.Equal(t, 2, stats.TotalVisits)
	assert.Equal(t, 1, stats.CompletedVisits)
	assert.Equal(t, 3, stats.TeethWithData)
	assert.Equal(t, 2, stats.TotalObservations)
	// One procedure across two teeth counts once, costs included.
	assert.Equal(t, 1, stats.TotalProcedures)
	assert.Equal(t, 120.0, stats.EstimatedCostTotal)
	assert.Equal(t, 135.5, stats.ActualCostTotal)
}
