package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSample(id int64, number string, status model.SampleStatus) *model.Sample {
	s := &model.Sample{
		Number:  number,
		Status:  status,
		Program: "surfaces",
		Label:   "ligne 1",
		Nature:  "lait cru",
	}
	s.ID = id
	s.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return s
}

func TestSampleTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    model.SampleStatus
		to      model.SampleStatus
		wantErr error
	}{
		{name: "pending to in_progress", from: model.SamplePending, to: model.SampleInProgress},
		{name: "in_progress to waiting_entero", from: model.SampleInProgress, to: model.SampleWaitingEntero},
		{name: "in_progress to waiting_yeast", from: model.SampleInProgress, to: model.SampleWaitingYeast},
		{name: "waiting_entero to completed", from: model.SampleWaitingEntero, to: model.SampleCompleted},
		{name: "waiting_yeast to completed", from: model.SampleWaitingYeast, to: model.SampleCompleted},
		{name: "pending may be rejected", from: model.SamplePending, to: model.SampleRejected},
		{name: "waiting_entero may be rejected", from: model.SampleWaitingEntero, to: model.SampleRejected},
		{name: "pending cannot complete", from: model.SamplePending, to: model.SampleCompleted, wantErr: code.IllegalTransition},
		{name: "completed is terminal", from: model.SampleCompleted, to: model.SampleInProgress, wantErr: code.IllegalTransition},
		{name: "rejected is terminal", from: model.SampleRejected, to: model.SamplePending, wantErr: code.IllegalTransition},
		{name: "skipping in_progress is illegal", from: model.SamplePending, to: model.SampleWaitingEntero, wantErr: code.IllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSample(1, "E1", tt.from)
			change, err := Sample(s, tt.to)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, change)
				assert.Equal(t, tt.from, s.Status, "input must stay untouched")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, change.Status)
			assert.Equal(t, map[string]any{"status": tt.to}, change.Patch)
			assert.Equal(t, tt.from, s.Status, "input must stay untouched")
		})
	}
}

func TestSampleTransitionUnknownStatus(t *testing.T) {
	_, err := Sample(newSample(1, "E1", model.SamplePending), "archived")
	assert.True(t, errors.Is(err, code.ParamErr))
}

func TestFormStartAnalyses(t *testing.T) {
	form := &model.SampleForm{
		Status: model.FormDraft,
		Samples: []*model.Sample{
			newSample(1, "E1", model.SamplePending),
			newSample(2, "E2", model.SamplePending),
		},
	}

	change, err := Form(form, model.FormAnalysesInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.FormAnalysesInProgress, change.Status)
	assert.Nil(t, change.SamplePatches)
}

func TestFormStartAnalysesNamesIncompleteSamples(t *testing.T) {
	incomplete := newSample(2, "E2", model.SamplePending)
	incomplete.Nature = ""
	form := &model.SampleForm{
		Status: model.FormDraft,
		Samples: []*model.Sample{
			newSample(1, "E1", model.SamplePending),
			incomplete,
		},
	}

	change, err := Form(form, model.FormAnalysesInProgress)
	require.Error(t, err)
	assert.Nil(t, change)
	assert.True(t, errors.Is(err, code.PreconditionFailed))

	var pre *PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, []string{"E2"}, pre.Samples)
	assert.Equal(t, model.FormDraft, form.Status)
}

func TestFormStartAnalysesWithoutSamples(t *testing.T) {
	form := &model.SampleForm{Status: model.FormDraft}
	_, err := Form(form, model.FormAnalysesInProgress)
	assert.True(t, errors.Is(err, code.PreconditionFailed))
}

func TestFormWaitingReadingStampsDueDatesOnce(t *testing.T) {
	classified := newSample(1, "E1", model.SampleInProgress)
	classified.AnalysisDelayClass = model.Delay24h

	alreadyStamped := newSample(2, "E2", model.SampleInProgress)
	alreadyStamped.AnalysisDelayClass = model.Delay48h
	existing := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	alreadyStamped.EnteroReadingDue = &existing

	unclassified := newSample(3, "E3", model.SampleInProgress)

	yeastTrack := newSample(4, "E4", model.SampleInProgress)
	yeastTrack.AnalysisDelayClass = model.Delay5d

	form := &model.SampleForm{
		Status:  model.FormAnalysesInProgress,
		Samples: []*model.Sample{classified, alreadyStamped, unclassified, yeastTrack},
	}

	change, err := Form(form, model.FormWaitingReading)
	require.NoError(t, err)
	assert.Equal(t, model.FormWaitingReading, change.Status)

	require.Len(t, change.SamplePatches, 2)
	assert.Equal(t,
		time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		change.SamplePatches[1]["entero_reading_due"])
	assert.Equal(t,
		time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC),
		change.SamplePatches[4]["yeast_reading_due"])

	// sample with an existing due date and sample without a class are skipped
	assert.NotContains(t, change.SamplePatches, int64(2))
	assert.NotContains(t, change.SamplePatches, int64(3))
}

func TestFormCompleteRequiresTerminalSamples(t *testing.T) {
	form := &model.SampleForm{
		Status: model.FormWaitingReading,
		Samples: []*model.Sample{
			newSample(1, "E1", model.SampleCompleted),
			newSample(2, "E2", model.SamplePending),
		},
	}

	change, err := Form(form, model.FormCompleted)
	require.Error(t, err)
	assert.Nil(t, change)
	assert.True(t, errors.Is(err, code.PreconditionFailed))

	var pre *PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, []string{"E2"}, pre.Samples)
	assert.Contains(t, err.Error(), "E2")
	assert.Equal(t, model.FormWaitingReading, form.Status, "status unchanged on failure")
}

func TestFormCompleteWithRejectedSamples(t *testing.T) {
	form := &model.SampleForm{
		Status: model.FormWaitingReading,
		Samples: []*model.Sample{
			newSample(1, "E1", model.SampleCompleted),
			newSample(2, "E2", model.SampleRejected),
		},
	}

	change, err := Form(form, model.FormCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.FormCompleted, change.Status)
}

func TestFormCancelAndReactivate(t *testing.T) {
	for _, from := range []model.FormStatus{
		model.FormDraft, model.FormAnalysesInProgress, model.FormWaitingReading, model.FormCancelled,
	} {
		form := &model.SampleForm{
			Status:  from,
			Samples: []*model.Sample{newSample(1, "E1", model.SampleInProgress)},
		}
		change, err := Form(form, model.FormCancelled)
		require.NoError(t, err, "cancel from %s", from)
		assert.Equal(t, model.FormCancelled, change.Status)
		assert.Nil(t, change.SamplePatches, "cancel must not cascade to samples")
	}

	completed := &model.SampleForm{Status: model.FormCompleted}
	_, err := Form(completed, model.FormCancelled)
	assert.True(t, errors.Is(err, code.IllegalTransition))

	cancelled := &model.SampleForm{Status: model.FormCancelled}
	change, err := Form(cancelled, model.FormDraft)
	require.NoError(t, err)
	assert.Equal(t, model.FormDraft, change.Status)

	// reactivation is the only path out of cancelled
	_, err = Form(&model.SampleForm{Status: model.FormCancelled}, model.FormWaitingReading)
	assert.True(t, errors.Is(err, code.IllegalTransition))
}

func TestFormSkippingStagesIsIllegal(t *testing.T) {
	form := &model.SampleForm{
		Status:  model.FormDraft,
		Samples: []*model.Sample{newSample(1, "E1", model.SamplePending)},
	}
	_, err := Form(form, model.FormCompleted)
	assert.True(t, errors.Is(err, code.IllegalTransition))

	_, err = Form(form, model.FormWaitingReading)
	assert.True(t, errors.Is(err, code.IllegalTransition))
}
