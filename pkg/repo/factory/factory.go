// Package factory binds the repo interfaces to a storage backend. The
// service runs either against its own postgres schema or against the
// hosted table service the legacy deployment writes to; STORE_BACKEND
// picks the wiring at startup.
package factory

import (
	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/form"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/planning"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/sample"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/selection"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/tablestore"
)

func backend() config.StoreBackend {
	return config.Global().Store.Backend
}

func SampleRepo() repo.SampleRepo {
	if backend() == config.StoreTable {
		return tablestore.NewSampleRepo()
	}
	return sample.New()
}

func FormRepo() repo.FormRepo {
	if backend() == config.StoreTable {
		return tablestore.NewFormRepo()
	}
	return form.New()
}

func PlanningRepo() repo.PlanningRepo {
	if backend() == config.StoreTable {
		return tablestore.NewPlanningRepo()
	}
	return planning.New()
}

// SelectionStore always lives in redis. The bacteria selection is a
// single shared key, not tabular data, so it does not follow the
// STORE_BACKEND switch.
func SelectionStore() repo.SelectionStore {
	return selection.New()
}
