package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalops/dental-admin-api/internal/model"
)

func TestExpansionSetToggle(t *testing.T) {
	set := NewExpansionSet()

	assert.True(t, set.Toggle("visit-1"))
	assert.True(t, set.Expanded("visit-1"))

	assert.False(t, set.Toggle("visit-1"))
	assert.False(t, set.Expanded("visit-1"))

	set.Toggle("a")
	set.Toggle("b")
	set.Clear()
	assert.False(t, set.Expanded("a"))
	assert.False(t, set.Expanded("b"))
}

func TestToothSelectionSingleMode(t *testing.T) {
	sel := NewToothSelection(SelectSingle)

	sel.Toggle("16")
	assert.Equal(t, []string{"16"}, sel.Teeth())

	// A new pick replaces the previous one.
	sel.Toggle("21")
	assert.Equal(t, []string{"21"}, sel.Teeth())

	// Picking the selected tooth deselects it.
	sel.Toggle("21")
	assert.Empty(t, sel.Teeth())
}

func TestToothSelectionMultiMode(t *testing.T) {
	sel := NewToothSelection(SelectMulti)

	sel.Toggle("16")
	sel.Toggle("21")
	sel.Toggle("36")
	assert.Equal(t, []string{"16", "21", "36"}, sel.Teeth())

	sel.Toggle("21")
	assert.Equal(t, []string{"16", "36"}, sel.Teeth())
	assert.True(t, sel.Selected("16"))
	assert.False(t, sel.Selected("21"))
}

func TestBuildGrid(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	teeth := []ToothRecord{
		{ToothNumber: "16", Observations: []model.Observation{newObservation("16", true, false)}},
		{ToothNumber: "21", Procedures: []model.Procedure{procAt("21", created, nil, model.ProcedureStatusCompleted)}},
	}
	summaries := AggregateToothSummaries(teeth)

	sel := NewToothSelection(SelectSingle)
	sel.Toggle("16")

	grid := BuildGrid(DentitionPermanent, summaries, sel)

	require.Len(t, grid[0], 8)
	require.Len(t, grid[1], 8)

	var cell16, cell21, cell11 GridCell
	for _, c := range grid[0] {
		switch c.ToothNumber {
		case "16":
			cell16 = c
		case "11":
			cell11 = c
		}
	}
	for _, c := range grid[1] {
		if c.ToothNumber == "21" {
			cell21 = c
		}
	}

	assert.Equal(t, StatusNeedsAttention, cell16.Status)
	assert.Equal(t, CategoryError, cell16.Category)
	assert.True(t, cell16.Selected)
	assert.True(t, cell16.HasRecords)

	assert.Equal(t, StatusCompleted, cell21.Status)
	assert.Equal(t, CategorySuccess, cell21.Category)
	assert.False(t, cell21.Selected)

	assert.Equal(t, StatusHealthy, cell11.Status)
	assert.Equal(t, CategoryNeutral, cell11.Category)
	assert.False(t, cell11.HasRecords)
}

func TestBuildGridPrimaryDentition(t *testing.T) {
	grid := BuildGrid(DentitionPrimary, nil, nil)
	for q := 0; q < 4; q++ {
		assert.Len(t, grid[q], 5)
	}
	assert.Equal(t, "51", grid[0][0].ToothNumber)
	assert.Equal(t, "85", grid[3][4].ToothNumber)
}
