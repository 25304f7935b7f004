package procedure

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalops/dental-admin-api/internal/model"
	apperrors "github.com/dentalops/dental-admin-api/pkg/errors"
)

type fakeProcedureRepo struct {
	procedures map[uuid.UUID]*model.Procedure
	updated    *model.Procedure
}

func newFakeProcedureRepo(procedures ...*model.Procedure) *fakeProcedureRepo {
	repo := &fakeProcedureRepo{procedures: make(map[uuid.UUID]*model.Procedure)}
	for _, p := range procedures {
		repo.procedures[p.ID] = p
	}
	return repo
}

func (f *fakeProcedureRepo) Create(ctx context.Context, p *model.Procedure) error {
	f.procedures[p.ID] = p
	return nil
}

func (f *fakeProcedureRepo) Get(ctx context.Context, id uuid.UUID) (*model.Procedure, error) {
	p, ok := f.procedures[id]
	if !ok {
		return nil, apperrors.NewNotFound("procedure", nil)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProcedureRepo) Update(ctx context.Context, p *model.Procedure) error {
	f.procedures[p.ID] = p
	f.updated = p
	return nil
}

func (f *fakeProcedureRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.ProcedureFilters) ([]*model.Procedure, error) {
	var out []*model.Procedure
	for _, p := range f.procedures {
		out = append(out, p)
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return p, nil
}
func (f *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakePatientRepo) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}

type fakeInvalidator struct {
	invalidated []uuid.UUID
}

func (f *fakeInvalidator) Invalidate(patientID uuid.UUID) {
	f.invalidated = append(f.invalidated, patientID)
}

func testPatient() *model.Patient {
	return &model.Patient{Base: model.Base{ID: uuid.New()}}
}

func plannedProcedure(patientID uuid.UUID) *model.Procedure {
	return &model.Procedure{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		PatientID:    patientID,
		ToothNumbers: "11",
		Code:         "D2330",
		Name:         "Filling",
		Status:       model.ProcedureStatusPlanned,
		ScheduledAt:  time.Now(),
	}
}

func TestCreateProcedureValidatesTeeth(t *testing.T) {
	patient := testPatient()
	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}}
	procRepo := newFakeProcedureRepo()
	inv := &fakeInvalidator{}
	svc := NewService(procRepo, patientRepo, nil, inv)

	_, err := svc.CreateProcedure(context.Background(), patient.ID, &model.CreateProcedureRequest{
		ToothNumbers: "11,99",
		Code:         "D2330",
		Name:         "Filling",
		ScheduledAt:  time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99")
}

func TestCreateProcedureStartsPlanned(t *testing.T) {
	patient := testPatient()
	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}}
	procRepo := newFakeProcedureRepo()
	inv := &fakeInvalidator{}
	svc := NewService(procRepo, patientRepo, nil, inv)

	proc, err := svc.CreateProcedure(context.Background(), patient.ID, &model.CreateProcedureRequest{
		ToothNumbers: "11, 21",
		Code:         "D2330",
		Name:         "Filling",
		ScheduledAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProcedureStatusPlanned, proc.Status)
	assert.Equal(t, []string{"11", "21"}, proc.TeethList())
	assert.Equal(t, []uuid.UUID{patient.ID}, inv.invalidated)
}

func TestUpdateProcedureEnforcesLifecycle(t *testing.T) {
	patient := testPatient()
	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}}

	completed := plannedProcedure(patient.ID)
	completed.Status = model.ProcedureStatusCompleted
	procRepo := newFakeProcedureRepo(completed)
	svc := NewService(procRepo, patientRepo, nil, &fakeInvalidator{})

	planned := model.ProcedureStatusPlanned
	_, err := svc.UpdateProcedure(context.Background(), completed.ID, &model.UpdateProcedureRequest{
		Status: &planned,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestUpdateProcedureCompletionStampsDate(t *testing.T) {
	patient := testPatient()
	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}}

	proc := plannedProcedure(patient.ID)
	procRepo := newFakeProcedureRepo(proc)
	inv := &fakeInvalidator{}
	svc := NewService(procRepo, patientRepo, nil, inv)

	completedStatus := model.ProcedureStatusCompleted
	updated, err := svc.UpdateProcedure(context.Background(), proc.ID, &model.UpdateProcedureRequest{
		Status: &completedStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProcedureStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedDate)
	assert.Equal(t, []uuid.UUID{patient.ID}, inv.invalidated)
}
