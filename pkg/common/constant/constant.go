package constant

import "time"

const (
	// MaxMessageSize bounds websocket payloads on the alert feed.
	MaxMessageSize = 1024 * 1024

	// SelectionKey is the fixed namespace under which the coordinator's
	// bacteria selection is persisted.
	SelectionKey = "qc:bacteria:selection"

	// DefaultShutdownTimeout bounds graceful HTTP shutdown.
	DefaultShutdownTimeout = 60 * time.Second
)

// Store-side table names. The hosted table service and the postgres
// schema share them.
const (
	TableSamples         = "samples"
	TableForms           = "form_samples"
	TablePlannedAnalyses = "analyses_planifiees"
	TableOngoingAnalyses = "analyses_en_cours"
)

// Sites is the fixed set of physical collection sites.
var Sites = []string{"R1", "R2", "BK"}

func ValidSite(site string) bool {
	for _, s := range Sites {
		if s == site {
			return true
		}
	}
	return false
}
