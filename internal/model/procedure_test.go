package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeethList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"16", []string{"16"}},
		{"14, 15, 16", []string{"14", "15", "16"}},
		{"14,15,16", []string{"14", "15", "16"}},
		{" 21 , , 22 ", []string{"21", "22"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		p := Procedure{ToothNumbers: tt.input}
		assert.Equal(t, tt.want, p.TeethList(), "input %q", tt.input)
	}
}

func TestProcedureTransitions(t *testing.T) {
	planned := Procedure{Status: ProcedureStatusPlanned}
	assert.True(t, planned.CanTransition(ProcedureStatusInProgress))
	assert.True(t, planned.CanTransition(ProcedureStatusCompleted))
	assert.True(t, planned.CanTransition(ProcedureStatusCancelled))

	inProgress := Procedure{Status: ProcedureStatusInProgress}
	assert.True(t, inProgress.CanTransition(ProcedureStatusCompleted))
	assert.False(t, inProgress.CanTransition(ProcedureStatusCancelled))
	assert.False(t, inProgress.CanTransition(ProcedureStatusPlanned))

	// Completion and cancellation are terminal.
	completed := Procedure{Status: ProcedureStatusCompleted}
	cancelled := Procedure{Status: ProcedureStatusCancelled}
	for _, to := range []ProcedureStatus{ProcedureStatusPlanned, ProcedureStatusInProgress, ProcedureStatusCompleted, ProcedureStatusCancelled} {
		assert.False(t, completed.CanTransition(to))
		assert.False(t, cancelled.CanTransition(to))
	}
}
