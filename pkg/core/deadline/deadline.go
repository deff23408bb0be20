// Package deadline computes reading due dates from a sample's creation
// time and its analysis delay class. All functions are pure: no clock is
// captured beyond the explicit createdAt input.
package deadline

import (
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

const (
	enteroOffset24h = 24 * time.Hour
	enteroOffset48h = 48 * time.Hour
	yeastOffset5d   = 5 * 24 * time.Hour
)

// DueDates holds the computed due date per reading track. For a valid
// delay class exactly one of the two is set: 24h/48h gate the
// enterobacteria track, 5d gates the yeast/mold track.
type DueDates struct {
	EnteroDue *time.Time
	YeastDue  *time.Time
}

// ComputeDueDates returns the reading due dates for a sample created at
// createdAt under the given delay class. An empty or unrecognized class
// yields no due dates: no deadline applies yet, which is not an error.
func ComputeDueDates(createdAt time.Time, class model.DelayClass) DueDates {
	switch class {
	case model.Delay24h:
		due := createdAt.Add(enteroOffset24h)
		return DueDates{EnteroDue: &due}
	case model.Delay48h:
		due := createdAt.Add(enteroOffset48h)
		return DueDates{EnteroDue: &due}
	case model.Delay5d:
		due := createdAt.Add(yeastOffset5d)
		return DueDates{YeastDue: &due}
	default:
		return DueDates{}
	}
}
