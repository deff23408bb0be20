package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	formSvc "github.com/RIPRED14/lotfiv7-sub001/pkg/core/form"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type fakeFormRepo struct {
	forms       map[int64]*model.SampleForm
	nextID      int64
	updateCalls []map[string]any
	failUpdate  error
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: map[int64]*model.SampleForm{}, nextID: 1}
}

func (f *fakeFormRepo) Create(_ context.Context, form *model.SampleForm) error {
	form.ID = f.nextID
	form.UUID = uuid.NewV4()
	form.CreatedAt = time.Now()
	f.nextID++
	for _, s := range form.Samples {
		s.ID = f.nextID
		s.UUID = uuid.NewV4()
		s.FormID = form.ID
		s.CreatedAt = form.CreatedAt
		f.nextID++
	}
	f.forms[form.ID] = form
	return nil
}

func (f *fakeFormRepo) Update(_ context.Context, id int64, patch map[string]any) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	form, ok := f.forms[id]
	if !ok {
		return code.FormNotFound
	}
	f.updateCalls = append(f.updateCalls, patch)
	if status, ok := patch["status"]; ok {
		form.Status = status.(model.FormStatus)
	}
	return nil
}

func (f *fakeFormRepo) GetByUUID(_ context.Context, id uuid.UUID, _ bool) (*model.SampleForm, error) {
	for _, form := range f.forms {
		if form.UUID == id {
			return form, nil
		}
	}
	return nil, code.FormNotFound
}

func (f *fakeFormRepo) List(_ context.Context, _ *repo.FormQuery) ([]*model.SampleForm, int64, error) {
	out := make([]*model.SampleForm, 0, len(f.forms))
	for _, form := range f.forms {
		out = append(out, form)
	}
	return out, int64(len(out)), nil
}

type fakeSampleRepo struct {
	samples     map[int64]*model.Sample
	nextID      int64
	createCalls int
	updateCalls map[int64][]map[string]any
	failUpdate  error
}

func newFakeSampleRepo() *fakeSampleRepo {
	return &fakeSampleRepo{
		samples:     map[int64]*model.Sample{},
		nextID:      1000,
		updateCalls: map[int64][]map[string]any{},
	}
}

func (f *fakeSampleRepo) Create(_ context.Context, s *model.Sample) error {
	f.createCalls++
	for _, existing := range f.samples {
		if existing.FormID == s.FormID && existing.Number == s.Number {
			return code.DuplicateSampleNumber
		}
	}
	s.ID = f.nextID
	s.UUID = uuid.NewV4()
	f.nextID++
	f.samples[s.ID] = s
	return nil
}

func (f *fakeSampleRepo) Update(_ context.Context, id int64, patch map[string]any) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	f.updateCalls[id] = append(f.updateCalls[id], patch)
	return nil
}

func (f *fakeSampleRepo) GetByUUID(_ context.Context, id uuid.UUID) (*model.Sample, error) {
	for _, s := range f.samples {
		if s.UUID == id {
			return s, nil
		}
	}
	return nil, code.SampleNotFound
}

func (f *fakeSampleRepo) ListByForm(_ context.Context, formID int64) ([]*model.Sample, error) {
	var out []*model.Sample
	for _, s := range f.samples {
		if s.FormID == formID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSampleRepo) ListActive(_ context.Context) ([]*model.Sample, error) {
	var out []*model.Sample
	for _, s := range f.samples {
		if !s.Status.Terminal() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSampleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.samples[id]; !ok {
		return code.SampleNotFound
	}
	delete(f.samples, id)
	return nil
}

func newService(formRepo *fakeFormRepo, sampleRepo *fakeSampleRepo) formSvc.Service {
	return NewWith(formRepo, sampleRepo, nil, time.Now)
}

func createDraft(t *testing.T, svc formSvc.Service, samples ...*formSvc.SampleIn) *formSvc.Resp {
	t.Helper()
	resp, err := svc.Create(context.Background(), &formSvc.CreateReq{
		Site:           "R1",
		CollectionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Samples:        samples,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRejectsUnknownSite(t *testing.T) {
	svc := newService(newFakeFormRepo(), newFakeSampleRepo())

	_, err := svc.Create(context.Background(), &formSvc.CreateReq{Site: "XX"})
	assert.ErrorIs(t, err, code.ParamErr)
}

func TestCreateRejectsDuplicateNumbersInRequest(t *testing.T) {
	svc := newService(newFakeFormRepo(), newFakeSampleRepo())

	_, err := svc.Create(context.Background(), &formSvc.CreateReq{
		Site:           "R1",
		CollectionDate: time.Now(),
		Samples: []*formSvc.SampleIn{
			{Number: "E1"}, {Number: "E1"},
		},
	})
	assert.ErrorIs(t, err, code.DuplicateSampleNumber)
}

func TestUpdateRejectsNonDraftForm(t *testing.T) {
	formRepo := newFakeFormRepo()
	svc := newService(formRepo, newFakeSampleRepo())

	resp := createDraft(t, svc)
	formRepo.forms[1].Status = model.FormWaitingReading

	site := "R2"
	err := svc.Update(context.Background(), &formSvc.UpdateReq{UUID: resp.UUID, Site: &site})
	assert.ErrorIs(t, err, code.FormImmutable)
}

func TestTransitionStartAnalysesNamesIncompleteSamples(t *testing.T) {
	formRepo := newFakeFormRepo()
	svc := newService(formRepo, newFakeSampleRepo())

	resp := createDraft(t, svc,
		&formSvc.SampleIn{Number: "E1", Program: "p", Label: "l", Nature: "n"},
		&formSvc.SampleIn{Number: "E2"},
	)

	_, err := svc.Transition(context.Background(), &formSvc.TransitionReq{
		UUID:   resp.UUID,
		Target: model.FormAnalysesInProgress,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, code.PreconditionFailed)
	assert.Contains(t, err.Error(), "E2")
	assert.NotContains(t, err.Error(), "E1")

	// nothing persisted
	assert.Empty(t, formRepo.updateCalls)
	assert.Equal(t, model.FormDraft, formRepo.forms[1].Status)
}

func TestTransitionToWaitingReadingStampsDueDates(t *testing.T) {
	formRepo := newFakeFormRepo()
	sampleRepo := newFakeSampleRepo()
	svc := newService(formRepo, sampleRepo)

	resp := createDraft(t, svc,
		&formSvc.SampleIn{Number: "E1", Program: "p", Label: "l", Nature: "n", AnalysisDelayClass: model.Delay24h},
	)
	formRepo.forms[1].Status = model.FormAnalysesInProgress

	_, err := svc.Transition(context.Background(), &formSvc.TransitionReq{
		UUID:   resp.UUID,
		Target: model.FormWaitingReading,
	})
	require.NoError(t, err)

	sampleID := formRepo.forms[1].Samples[0].ID
	require.Len(t, sampleRepo.updateCalls[sampleID], 1)
	assert.Contains(t, sampleRepo.updateCalls[sampleID][0], "entero_reading_due")
	assert.Equal(t, model.FormWaitingReading, formRepo.forms[1].Status)
}

func TestTransitionWriteFailureLeavesStatusUnchanged(t *testing.T) {
	formRepo := newFakeFormRepo()
	svc := newService(formRepo, newFakeSampleRepo())

	resp := createDraft(t, svc,
		&formSvc.SampleIn{Number: "E1", Program: "p", Label: "l", Nature: "n"},
	)
	formRepo.failUpdate = errors.New("store down")

	_, err := svc.Transition(context.Background(), &formSvc.TransitionReq{
		UUID:   resp.UUID,
		Target: model.FormAnalysesInProgress,
	})
	require.Error(t, err)
	assert.Equal(t, model.FormDraft, formRepo.forms[1].Status)
}

func TestAddSampleOnlyOnDraft(t *testing.T) {
	formRepo := newFakeFormRepo()
	svc := newService(formRepo, newFakeSampleRepo())

	resp := createDraft(t, svc)
	formRepo.forms[1].Status = model.FormCompleted

	_, err := svc.AddSample(context.Background(), &formSvc.AddSampleReq{
		FormUUID: resp.UUID,
		SampleIn: formSvc.SampleIn{Number: "E1"},
	})
	assert.ErrorIs(t, err, code.FormImmutable)
}

func TestAddSampleRejectsUsedNumber(t *testing.T) {
	formRepo := newFakeFormRepo()
	sampleRepo := newFakeSampleRepo()
	svc := newService(formRepo, sampleRepo)

	resp := createDraft(t, svc, &formSvc.SampleIn{Number: "E1"})

	// the fakes carry no unique constraint, so the service check is the
	// only thing standing between the request and a duplicate row
	_, err := svc.AddSample(context.Background(), &formSvc.AddSampleReq{
		FormUUID: resp.UUID,
		SampleIn: formSvc.SampleIn{Number: "E1"},
	})
	assert.ErrorIs(t, err, code.DuplicateSampleNumber)
	assert.Zero(t, sampleRepo.createCalls, "duplicate must be rejected before the write")
}

func TestDuplicateSampleRejectsUsedNumber(t *testing.T) {
	formRepo := newFakeFormRepo()
	sampleRepo := newFakeSampleRepo()
	svc := newService(formRepo, sampleRepo)

	resp := createDraft(t, svc,
		&formSvc.SampleIn{Number: "E1"},
		&formSvc.SampleIn{Number: "E2"},
	)

	src := formRepo.forms[1].Samples[0]
	_, err := svc.DuplicateSample(context.Background(), &formSvc.DuplicateSampleReq{
		FormUUID:   resp.UUID,
		SampleUUID: src.UUID,
		Number:     "E2",
	})
	assert.ErrorIs(t, err, code.DuplicateSampleNumber)
	assert.Zero(t, sampleRepo.createCalls, "duplicate must be rejected before the write")
}

func TestDuplicateSampleCopiesDescriptiveFields(t *testing.T) {
	formRepo := newFakeFormRepo()
	sampleRepo := newFakeSampleRepo()
	svc := newService(formRepo, sampleRepo)

	resp := createDraft(t, svc,
		&formSvc.SampleIn{Number: "E1", Program: "prog", Label: "lab", Nature: "nat", AnalysisDelayClass: model.Delay48h},
	)

	src := formRepo.forms[1].Samples[0]
	dup, err := svc.DuplicateSample(context.Background(), &formSvc.DuplicateSampleReq{
		FormUUID:   resp.UUID,
		SampleUUID: src.UUID,
		Number:     "E2",
	})
	require.NoError(t, err)
	assert.Equal(t, "E2", dup.Number)
	assert.Equal(t, "prog", dup.Program)
	assert.Equal(t, model.Delay48h, dup.AnalysisDelayClass)
	assert.Equal(t, model.SamplePending, dup.Status)
}

func TestRemoveSampleUnknownUUID(t *testing.T) {
	formRepo := newFakeFormRepo()
	svc := newService(formRepo, newFakeSampleRepo())

	resp := createDraft(t, svc)
	err := svc.RemoveSample(context.Background(), &formSvc.RemoveSampleReq{
		FormUUID:   resp.UUID,
		SampleUUID: uuid.NewV4(),
	})
	assert.ErrorIs(t, err, code.SampleNotFound)
}
