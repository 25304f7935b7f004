package chart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chartcore "github.com/dentalops/dental-admin-api/internal/chart"
	"github.com/dentalops/dental-admin-api/internal/model"
)

type fakeObservationRepo struct {
	observations []*model.Observation
	links        map[uuid.UUID][]model.Procedure
	listCalls    int
}

func (f *fakeObservationRepo) Create(ctx context.Context, o *model.Observation) error { return nil }
func (f *fakeObservationRepo) Get(ctx context.Context, id uuid.UUID) (*model.Observation, error) {
	return nil, nil
}
func (f *fakeObservationRepo) Update(ctx context.Context, o *model.Observation) error { return nil }

func (f *fakeObservationRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.ObservationFilters) ([]*model.Observation, error) {
	f.listCalls++
	return f.observations, nil
}

func (f *fakeObservationRepo) ListProcedureLinks(ctx context.Context, observationIDs []uuid.UUID) (map[uuid.UUID][]model.Procedure, error) {
	if f.links == nil {
		return map[uuid.UUID][]model.Procedure{}, nil
	}
	return f.links, nil
}

type fakeProcedureRepo struct {
	procedures []*model.Procedure
}

func (f *fakeProcedureRepo) Create(ctx context.Context, p *model.Procedure) error { return nil }
func (f *fakeProcedureRepo) Get(ctx context.Context, id uuid.UUID) (*model.Procedure, error) {
	return nil, nil
}
func (f *fakeProcedureRepo) Update(ctx context.Context, p *model.Procedure) error { return nil }

func (f *fakeProcedureRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.ProcedureFilters) ([]*model.Procedure, error) {
	return f.procedures, nil
}

func newObservation(tooth string, createdAt time.Time) *model.Observation {
	return &model.Observation{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		PatientID:     uuid.New(),
		ToothNumber:   tooth,
		ConditionType: "Cavity",
	}
}

func newProcedure(teeth string, status model.ProcedureStatus, createdAt time.Time) *model.Procedure {
	return &model.Procedure{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		PatientID:    uuid.New(),
		ToothNumbers: teeth,
		Code:         "D2330",
		Name:         "Filling",
		Status:       status,
	}
}

func TestGetChartComposesToothRecords(t *testing.T) {
	now := time.Now()
	obsRepo := &fakeObservationRepo{
		observations: []*model.Observation{
			newObservation("11", now),
			newObservation("36", now),
		},
	}
	procRepo := &fakeProcedureRepo{
		procedures: []*model.Procedure{
			newProcedure("11,12", model.ProcedureStatusCompleted, now),
		},
	}

	svc := NewService(obsRepo, procRepo, Config{}, nil)
	chart, err := svc.GetChart(context.Background(), uuid.New())
	require.NoError(t, err)

	// 11 and 36 from observations, 12 from the multi-tooth procedure.
	require.Len(t, chart.Teeth, 3)

	byTooth := make(map[string]chartcore.ToothRecord)
	for _, rec := range chart.Teeth {
		byTooth[rec.ToothNumber] = rec
	}
	assert.Len(t, byTooth["11"].Observations, 1)
	assert.Len(t, byTooth["11"].Procedures, 1)
	assert.Len(t, byTooth["12"].Procedures, 1)
	assert.Empty(t, byTooth["12"].Observations)
	assert.Len(t, byTooth["36"].Observations, 1)

	// The spanning procedure counts once in stats.
	assert.Equal(t, 1, chart.Stats.TotalProcedures)
	assert.Equal(t, 2, chart.Stats.TotalObservations)
	assert.Equal(t, 3, chart.Stats.TeethWithData)
}

func TestGetChartCachesUntilInvalidated(t *testing.T) {
	now := time.Now()
	obsRepo := &fakeObservationRepo{
		observations: []*model.Observation{newObservation("21", now)},
	}
	procRepo := &fakeProcedureRepo{}

	svc := NewService(obsRepo, procRepo, Config{CacheTTL: time.Minute}, nil)
	patientID := uuid.New()

	_, err := svc.GetChart(context.Background(), patientID)
	require.NoError(t, err)
	_, err = svc.GetChart(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 1, obsRepo.listCalls)

	svc.Invalidate(patientID)
	_, err = svc.GetChart(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 2, obsRepo.listCalls)
}

func TestGetChartNormalizesLegacyProcedureLinks(t *testing.T) {
	now := time.Now()
	obs := newObservation("46", now)
	linked := newProcedure("46", model.ProcedureStatusCompleted, now)
	linked.ObservationID = &obs.ID

	obsRepo := &fakeObservationRepo{
		observations: []*model.Observation{obs},
		links:        map[uuid.UUID][]model.Procedure{obs.ID: {*linked}},
	}
	procRepo := &fakeProcedureRepo{}

	svc := NewService(obsRepo, procRepo, Config{}, nil)
	chart, err := svc.GetChart(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, chart.Teeth, 1)
	require.Len(t, chart.Teeth[0].Observations, 1)
	require.Len(t, chart.Teeth[0].Observations[0].Procedures, 1)
	assert.Nil(t, chart.Teeth[0].Observations[0].LegacyProcedure)

	// The linked procedure is treatment on the tooth itself, not just
	// an attachment of the observation.
	require.Len(t, chart.Teeth[0].Procedures, 1)
	assert.Equal(t, linked.ID, chart.Teeth[0].Procedures[0].ID)

	// The completed linked procedure drives the resolved status.
	require.Len(t, chart.Summaries, 1)
	assert.Equal(t, chartcore.StatusCompleted, chart.Summaries[0].OverallStatus)
}

func TestGetChartDeduplicatesLinkedProcedures(t *testing.T) {
	now := time.Now()
	obs := newObservation("46", now)
	linked := newProcedure("46", model.ProcedureStatusCompleted, now)
	linked.ObservationID = &obs.ID

	obsRepo := &fakeObservationRepo{
		observations: []*model.Observation{obs},
		links:        map[uuid.UUID][]model.Procedure{obs.ID: {*linked}},
	}
	// The same procedure also comes back in the flat patient list.
	procRepo := &fakeProcedureRepo{procedures: []*model.Procedure{linked}}

	svc := NewService(obsRepo, procRepo, Config{}, nil)
	chart, err := svc.GetChart(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, chart.Summaries, 1)
	assert.Len(t, chart.Summaries[0].Procedures, 1)
	assert.Equal(t, 1, chart.Stats.TotalProcedures)
	require.Len(t, chart.Visits, 1)
	assert.Len(t, chart.Visits[0].Procedures, 1)
}

func TestGetChartSkipsRecordsWithoutIdentity(t *testing.T) {
	now := time.Now()
	valid := newObservation("11", now)
	noID := newObservation("12", now)
	noID.ID = uuid.Nil
	noTimestamp := newObservation("13", time.Time{})

	obsRepo := &fakeObservationRepo{
		observations: []*model.Observation{valid, noID, noTimestamp},
	}
	procRepo := &fakeProcedureRepo{}

	svc := NewService(obsRepo, procRepo, Config{}, nil)
	chart, err := svc.GetChart(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, chart.Teeth, 1)
	assert.Equal(t, "11", chart.Teeth[0].ToothNumber)
}

func TestGetVisitsGetSummariesGetStats(t *testing.T) {
	now := time.Now()
	obsRepo := &fakeObservationRepo{
		observations: []*model.Observation{newObservation("11", now)},
	}
	cost := 120.0
	proc := newProcedure("11", model.ProcedureStatusCompleted, now)
	proc.EstimatedCost = &cost
	procRepo := &fakeProcedureRepo{procedures: []*model.Procedure{proc}}

	svc := NewService(obsRepo, procRepo, Config{}, nil)
	patientID := uuid.New()

	visits, err := svc.GetVisits(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, chartcore.VisitStatusCompleted, visits[0].Status)

	summaries, err := svc.GetSummaries(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, chartcore.StatusCompleted, summaries[0].OverallStatus)

	stats, err := svc.GetStats(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalVisits)
	assert.Equal(t, 1, stats.CompletedVisits)
	assert.Equal(t, cost, stats.EstimatedCostTotal)
}
