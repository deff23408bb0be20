// Package geloses maps bacterial test ids to their required culture
// medium and applicable ISO norm, and keeps the coordinator's persistent
// bacteria selection.
package geloses

import (
	"sort"
)

// Entry describes how one bacterial test is cultured.
type Entry struct {
	Medium  string
	ISONorm string
}

// The lookup table is allowed to be incomplete: unknown ids are skipped
// during resolution, not rejected.
var table = map[string]Entry{
	"entero":         {Medium: "VRBG", ISONorm: "ISO 21528-2"},
	"levures3j":      {Medium: "YGC", ISONorm: "ISO 21527-1"},
	"levures5j":      {Medium: "YGC", ISONorm: "ISO 21527-1"},
	"coliformes":     {Medium: "VRBL", ISONorm: "ISO 4832"},
	"flore_totale":   {Medium: "PCA", ISONorm: "ISO 4833-1"},
	"staphylocoques": {Medium: "Baird-Parker", ISONorm: "EN ISO 6888-1"},
	"listeria":       {Medium: "ALOA", ISONorm: "EN ISO 11290-2"},
	"salmonelles":    {Medium: "XLD", ISONorm: "EN ISO 6579-1"},
	"ecoli":          {Medium: "TBX", ISONorm: "ISO 16649-2"},
}

// Resolution is the deduplicated media/norm sets for a selection,
// sorted for stable output.
type Resolution struct {
	Media    []string `json:"media"`
	ISONorms []string `json:"iso_norms"`
}

// Resolve returns the culture media and ISO norms required by the given
// test ids. Pure lookup; unknown ids are silently excluded.
func Resolve(ids []string) Resolution {
	media := map[string]struct{}{}
	norms := map[string]struct{}{}
	for _, id := range ids {
		entry, ok := table[id]
		if !ok {
			continue
		}
		media[entry.Medium] = struct{}{}
		norms[entry.ISONorm] = struct{}{}
	}
	return Resolution{
		Media:    sortedKeys(media),
		ISONorms: sortedKeys(norms),
	}
}

// Known reports whether a test id exists in the lookup table.
func Known(id string) bool {
	_, ok := table[id]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
