package sample

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	sampleSvc "github.com/RIPRED14/lotfiv7-sub001/pkg/core/sample"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type fakeRepo struct {
	samples map[int64]*model.Sample
	nextID  int64
	patches map[int64][]map[string]any
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		samples: map[int64]*model.Sample{},
		nextID:  1,
		patches: map[int64][]map[string]any{},
	}
}

func (f *fakeRepo) add(s *model.Sample) *model.Sample {
	s.ID = f.nextID
	s.UUID = uuid.NewV4()
	f.nextID++
	f.samples[s.ID] = s
	return s
}

func (f *fakeRepo) Create(_ context.Context, s *model.Sample) error {
	f.add(s)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, patch map[string]any) error {
	s, ok := f.samples[id]
	if !ok {
		return code.SampleNotFound
	}
	f.patches[id] = append(f.patches[id], patch)
	if status, ok := patch["status"]; ok {
		s.Status = status.(model.SampleStatus)
	}
	if v, ok := patch["enterobacteria"]; ok {
		value := v.(string)
		s.Enterobacteria = &value
	}
	if v, ok := patch["yeast_mold"]; ok {
		value := v.(string)
		s.YeastMold = &value
	}
	if v, ok := patch["analysis_delay_class"]; ok {
		s.AnalysisDelayClass = v.(model.DelayClass)
	}
	return nil
}

func (f *fakeRepo) GetByUUID(_ context.Context, id uuid.UUID) (*model.Sample, error) {
	for _, s := range f.samples {
		if s.UUID == id {
			return s, nil
		}
	}
	return nil, code.SampleNotFound
}

func (f *fakeRepo) ListByForm(_ context.Context, formID int64) ([]*model.Sample, error) {
	var out []*model.Sample
	for _, s := range f.samples {
		if s.FormID == formID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActive(_ context.Context) ([]*model.Sample, error) {
	var out []*model.Sample
	for _, s := range f.samples {
		if !s.Status.Terminal() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(f.samples, id)
	return nil
}

var fixedNow = time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

func newService(repo *fakeRepo) sampleSvc.Service {
	return NewWith(repo, func() time.Time { return fixedNow })
}

func TestEnterReadingsPatchesOnlyProvidedFields(t *testing.T) {
	repo := newFakeRepo()
	s := repo.add(&model.Sample{Number: "E1", Status: model.SampleWaitingEntero})
	svc := newService(repo)

	value := "12"
	grade := model.GradeA
	resp, err := svc.EnterReadings(context.Background(), &sampleSvc.ReadingsReq{
		UUID:           s.UUID,
		Enterobacteria: &value,
		Smell:          &grade,
	})
	require.NoError(t, err)

	require.Len(t, repo.patches[s.ID], 1)
	patch := repo.patches[s.ID][0]
	assert.Equal(t, "12", patch["enterobacteria"])
	assert.Equal(t, model.GradeA, patch["smell"])
	assert.NotContains(t, patch, "yeast_mold")
	assert.NotContains(t, patch, "texture")

	require.NotNil(t, resp.Enterobacteria)
	assert.Equal(t, "12", *resp.Enterobacteria)
}

func TestEnterReadingsRejectsTerminalSample(t *testing.T) {
	repo := newFakeRepo()
	s := repo.add(&model.Sample{Number: "E1", Status: model.SampleCompleted})
	svc := newService(repo)

	value := "3"
	_, err := svc.EnterReadings(context.Background(), &sampleSvc.ReadingsReq{
		UUID:           s.UUID,
		Enterobacteria: &value,
	})
	assert.ErrorIs(t, err, code.SampleUpdateErr)
	assert.Empty(t, repo.patches[s.ID])
}

func TestEnterReadingsRejectsUnknownGrade(t *testing.T) {
	repo := newFakeRepo()
	s := repo.add(&model.Sample{Number: "E1", Status: model.SampleInProgress})
	svc := newService(repo)

	bad := model.SensoryGrade("Z")
	_, err := svc.EnterReadings(context.Background(), &sampleSvc.ReadingsReq{
		UUID:  s.UUID,
		Taste: &bad,
	})
	assert.ErrorIs(t, err, code.ParamErr)
}

func TestClassifyFrozenAfterDueDateStamped(t *testing.T) {
	repo := newFakeRepo()
	due := fixedNow.Add(24 * time.Hour)
	s := repo.add(&model.Sample{
		Number:           "E1",
		Status:           model.SampleInProgress,
		EnteroReadingDue: &due,
	})
	svc := newService(repo)

	err := svc.Classify(context.Background(), &sampleSvc.ClassifyReq{
		UUID:  s.UUID,
		Class: model.Delay48h,
	})
	assert.ErrorIs(t, err, code.SampleUpdateErr)
}

func TestClassifySetsClass(t *testing.T) {
	repo := newFakeRepo()
	s := repo.add(&model.Sample{Number: "E1", Status: model.SamplePending})
	svc := newService(repo)

	err := svc.Classify(context.Background(), &sampleSvc.ClassifyReq{
		UUID:  s.UUID,
		Class: model.Delay5d,
	})
	require.NoError(t, err)
	assert.Equal(t, model.Delay5d, repo.samples[s.ID].AnalysisDelayClass)
}

func TestTransitionAppliesLifecycle(t *testing.T) {
	repo := newFakeRepo()
	s := repo.add(&model.Sample{Number: "E1", Status: model.SamplePending})
	svc := newService(repo)

	resp, err := svc.Transition(context.Background(), &sampleSvc.TransitionReq{
		UUID:   s.UUID,
		Target: model.SampleInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SampleInProgress, resp.Status)

	_, err = svc.Transition(context.Background(), &sampleSvc.TransitionReq{
		UUID:   s.UUID,
		Target: model.SampleCompleted,
	})
	assert.ErrorIs(t, err, code.IllegalTransition)
}

func TestAlertsSkipsQuietSamples(t *testing.T) {
	repo := newFakeRepo()
	overdue := fixedNow.Add(-2 * time.Hour)
	quiet := fixedNow.Add(48 * time.Hour)

	late := repo.add(&model.Sample{
		Number:           "E1",
		Status:           model.SampleWaitingEntero,
		EnteroReadingDue: &overdue,
	})
	late.CreatedAt = fixedNow.Add(-26 * time.Hour)

	ok := repo.add(&model.Sample{
		Number:           "E2",
		Status:           model.SampleWaitingEntero,
		EnteroReadingDue: &quiet,
	})
	ok.CreatedAt = fixedNow.Add(-time.Hour)

	svc := newService(repo)
	alerts, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "E1", alerts[0].Number)
	assert.Equal(t, "warning", alerts[0].Severity)
}
