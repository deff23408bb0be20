// Package lifecycle is the single authority over sample and form status
// transitions. Both machines are pure: they validate a requested
// transition against the current entity state and emit the field patches
// to persist, or a typed precondition failure. They never mutate their
// inputs and never touch the store.
package lifecycle

import (
	"fmt"
	"strings"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/deadline"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

// PreconditionError reports the specific unmet condition blocking a
// transition, naming the offending samples when applicable.
type PreconditionError struct {
	Rule    string
	Samples []string
}

func (e *PreconditionError) Error() string {
	if len(e.Samples) == 0 {
		return e.Rule
	}
	return fmt.Sprintf("%d samples %s: %s",
		len(e.Samples), e.Rule, strings.Join(e.Samples, ", "))
}

func (e *PreconditionError) Unwrap() error {
	return code.PreconditionFailed
}

// SampleChange describes the single persistence update a sample
// transition requires.
type SampleChange struct {
	Status model.SampleStatus
	Patch  map[string]any
}

// FormChange describes the updates a form transition requires: one for
// the form itself and, for transitions that stamp reading deadlines, one
// per affected sample keyed by sample ID.
type FormChange struct {
	Status        model.FormStatus
	FormPatch     map[string]any
	SamplePatches map[int64]map[string]any
}

var sampleNext = map[model.SampleStatus][]model.SampleStatus{
	model.SamplePending:       {model.SampleInProgress, model.SampleRejected},
	model.SampleInProgress:    {model.SampleWaitingEntero, model.SampleWaitingYeast, model.SampleRejected},
	model.SampleWaitingEntero: {model.SampleCompleted, model.SampleRejected},
	model.SampleWaitingYeast:  {model.SampleCompleted, model.SampleRejected},
}

// Sample validates a per-sample transition and returns the update to
// apply. Terminal states admit no further transition.
func Sample(s *model.Sample, target model.SampleStatus) (*SampleChange, error) {
	if !target.Valid() {
		return nil, code.ParamErr.WithMsgf("unknown sample status %q", target)
	}
	if !allowed(sampleNext[s.Status], target) {
		return nil, code.IllegalTransition.WithMsgf(
			"sample %s: %s -> %s", s.Number, s.Status, target)
	}
	return &SampleChange{
		Status: target,
		Patch:  map[string]any{"status": target},
	}, nil
}

// Form validates a form transition and returns the updates to apply.
//
// Rules:
//   - draft -> analyses_in_progress needs at least one sample and every
//     sample's program/label/nature filled; incomplete samples are named
//     in the returned PreconditionError.
//   - analyses_in_progress -> waiting_reading stamps reading due dates
//     for every owned sample that has a delay class and no existing due
//     date, so deadlines are computed exactly once.
//   - waiting_reading -> completed needs every owned sample terminal.
//   - cancelled is reachable from any state except completed and does
//     not cascade to sample statuses.
//   - cancelled -> draft is the sole reactivation path.
func Form(f *model.SampleForm, target model.FormStatus) (*FormChange, error) {
	if !target.Valid() {
		return nil, code.ParamErr.WithMsgf("unknown form status %q", target)
	}

	if target == model.FormCancelled {
		if f.Status == model.FormCompleted {
			return nil, code.IllegalTransition.WithMsg("a completed form cannot be cancelled")
		}
		return formChange(target), nil
	}

	switch {
	case f.Status == model.FormDraft && target == model.FormAnalysesInProgress:
		if incomplete := incompleteSamples(f); incomplete != nil {
			return nil, incomplete
		}
		return formChange(target), nil

	case f.Status == model.FormAnalysesInProgress && target == model.FormWaitingReading:
		change := formChange(target)
		change.SamplePatches = stampDueDates(f.Samples)
		return change, nil

	case f.Status == model.FormWaitingReading && target == model.FormCompleted:
		if open := openSamples(f); open != nil {
			return nil, open
		}
		return formChange(target), nil

	case f.Status == model.FormCancelled && target == model.FormDraft:
		return formChange(target), nil
	}

	return nil, code.IllegalTransition.WithMsgf("form: %s -> %s", f.Status, target)
}

func formChange(target model.FormStatus) *FormChange {
	return &FormChange{
		Status:    target,
		FormPatch: map[string]any{"status": target},
	}
}

func incompleteSamples(f *model.SampleForm) *PreconditionError {
	if len(f.Samples) == 0 {
		return &PreconditionError{Rule: "form has no samples"}
	}
	var missing []string
	for _, s := range f.Samples {
		if !s.RequiredFieldsSet() {
			missing = append(missing, s.Number)
		}
	}
	if len(missing) > 0 {
		return &PreconditionError{Rule: "missing required fields", Samples: missing}
	}
	return nil
}

func openSamples(f *model.SampleForm) *PreconditionError {
	var open []string
	for _, s := range f.Samples {
		if !s.Status.Terminal() {
			open = append(open, s.Number)
		}
	}
	if len(open) > 0 {
		return &PreconditionError{Rule: "not in a terminal state", Samples: open}
	}
	return nil
}

func stampDueDates(samples []*model.Sample) map[int64]map[string]any {
	patches := map[int64]map[string]any{}
	for _, s := range samples {
		if !s.AnalysisDelayClass.Valid() {
			continue
		}
		if s.EnteroReadingDue != nil || s.YeastReadingDue != nil {
			continue
		}
		dues := deadline.ComputeDueDates(s.CreatedAt, s.AnalysisDelayClass)
		patch := map[string]any{}
		if dues.EnteroDue != nil {
			patch["entero_reading_due"] = *dues.EnteroDue
		}
		if dues.YeastDue != nil {
			patch["yeast_reading_due"] = *dues.YeastDue
		}
		if len(patch) > 0 {
			patches[s.ID] = patch
		}
	}
	if len(patches) == 0 {
		return nil
	}
	return patches
}

func allowed(targets []model.SampleStatus, target model.SampleStatus) bool {
	for _, t := range targets {
		if t == target {
			return true
		}
	}
	return false
}
