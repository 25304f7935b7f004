package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeProceduresFoldsLegacyShape(t *testing.T) {
	legacy := &Procedure{Base: Base{ID: uuid.New()}, Name: "Root Canal"}

	obs := Observation{LegacyProcedure: legacy}
	obs.NormalizeProcedures()

	assert.Nil(t, obs.LegacyProcedure)
	assert.Len(t, obs.Procedures, 1)
	assert.Equal(t, "Root Canal", obs.Procedures[0].Name)
}

func TestNormalizeProceduresSkipsDuplicate(t *testing.T) {
	id := uuid.New()
	legacy := &Procedure{Base: Base{ID: id}, Name: "Root Canal"}

	obs := Observation{
		LegacyProcedure: legacy,
		Procedures:      []Procedure{{Base: Base{ID: id}, Name: "Root Canal"}},
	}
	obs.NormalizeProcedures()

	assert.Nil(t, obs.LegacyProcedure)
	assert.Len(t, obs.Procedures, 1)
}

func TestNormalizeProceduresNoLegacy(t *testing.T) {
	obs := Observation{}
	obs.NormalizeProcedures()
	assert.Empty(t, obs.Procedures)
}

func TestDisplayLabels(t *testing.T) {
	obs := Observation{}
	assert.Equal(t, "Not specified", obs.SeverityLabel())
	assert.Equal(t, "Not specified", obs.SurfaceLabel())

	obs.Severity = "Severe"
	obs.ToothSurface = "Occlusal"
	assert.Equal(t, "Severe", obs.SeverityLabel())
	assert.Equal(t, "Occlusal", obs.SurfaceLabel())
}
