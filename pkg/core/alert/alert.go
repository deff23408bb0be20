// Package alert derives the operator-facing severity of a sample from
// its reading deadlines. Resolve is a pure function of (now, sample) and
// is meant to be re-invoked by the caller on a timer or on demand.
package alert

import (
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

// Severity flags how urgently a sample needs operator attention.
type Severity int

const (
	None Severity = iota
	Warning
	Urgent
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Urgent:
		return "urgent"
	default:
		return "none"
	}
}

// Fallback offsets used when no explicit due date was ever stamped
// (samples created before a delay class was assigned).
const (
	fallbackEnteroAfter = 24 * time.Hour
	fallbackYeastAfter  = 5 * 24 * time.Hour
)

// Resolve returns the maximum severity across all triggered conditions.
// Explicit due dates dominate the elapsed-time fallback; the fallback
// only applies when neither due date is set. A malformed sample (zero
// createdAt) or a terminal status resolves to None: never alert on
// insufficient data, never block rendering.
func Resolve(now time.Time, s *model.Sample) Severity {
	if s == nil || s.CreatedAt.IsZero() || s.Status.Terminal() {
		return None
	}

	severity := None

	if s.EnteroReadingDue != nil || s.YeastReadingDue != nil {
		if s.EnteroReadingDue != nil && !s.EnteroRecorded() && !now.Before(*s.EnteroReadingDue) {
			severity = max(severity, Warning)
		}
		if s.YeastReadingDue != nil && !s.YeastRecorded() && !now.Before(*s.YeastReadingDue) {
			severity = max(severity, Urgent)
		}
		return severity
	}

	elapsed := now.Sub(s.CreatedAt)
	if elapsed >= fallbackEnteroAfter && !s.EnteroRecorded() {
		severity = max(severity, Warning)
	}
	if elapsed >= fallbackYeastAfter && !s.YeastRecorded() {
		severity = max(severity, Urgent)
	}
	return severity
}
