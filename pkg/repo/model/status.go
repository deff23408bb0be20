package model

// SampleStatus is the per-sample workflow status.
type SampleStatus string

const (
	SamplePending       SampleStatus = "pending"
	SampleInProgress    SampleStatus = "in_progress"
	SampleWaitingEntero SampleStatus = "waiting_entero"
	SampleWaitingYeast  SampleStatus = "waiting_yeast"
	SampleCompleted     SampleStatus = "completed"
	SampleRejected      SampleStatus = "rejected"
)

func (s SampleStatus) Valid() bool {
	switch s {
	case SamplePending, SampleInProgress, SampleWaitingEntero,
		SampleWaitingYeast, SampleCompleted, SampleRejected:
		return true
	}
	return false
}

// Terminal reports whether no further work is expected on the sample.
func (s SampleStatus) Terminal() bool {
	return s == SampleCompleted || s == SampleRejected
}

// FormStatus is the batch-level workflow status. It is a separate state
// machine from SampleStatus but the two must stay mutually consistent.
type FormStatus string

const (
	FormDraft              FormStatus = "draft"
	FormAnalysesInProgress FormStatus = "analyses_in_progress"
	FormWaitingReading     FormStatus = "waiting_reading"
	FormCompleted          FormStatus = "completed"
	FormCancelled          FormStatus = "cancelled"
)

func (s FormStatus) Valid() bool {
	switch s {
	case FormDraft, FormAnalysesInProgress, FormWaitingReading,
		FormCompleted, FormCancelled:
		return true
	}
	return false
}

// Editable reports whether a coordinator may still mutate the form
// header and its sample list.
func (s FormStatus) Editable() bool {
	return s == FormDraft
}

// DelayClass is the analysis delay category deciding which reading
// deadline applies to a sample. Empty means not assigned yet.
type DelayClass string

const (
	Delay24h DelayClass = "24h"
	Delay48h DelayClass = "48h"
	Delay5d  DelayClass = "5d"
)

func (d DelayClass) Valid() bool {
	switch d {
	case Delay24h, Delay48h, Delay5d:
		return true
	}
	return false
}

// SensoryGrade is an independent graded value for smell/texture/taste/
// aspect. Empty means not graded.
type SensoryGrade string

const (
	GradeN SensoryGrade = "N"
	GradeA SensoryGrade = "A"
	GradeB SensoryGrade = "B"
	GradeC SensoryGrade = "C"
	GradeD SensoryGrade = "D"
)

func (g SensoryGrade) Valid() bool {
	switch g {
	case "", GradeN, GradeA, GradeB, GradeC, GradeD:
		return true
	}
	return false
}
