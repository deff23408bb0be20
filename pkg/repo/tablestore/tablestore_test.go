package tablestore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWith(srv.URL, "test-key")
}

func TestSampleCreateDecodesRepresentation(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	id := uuid.MustFromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/v1/samples", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("apikey"))
		require.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var row sampleRow
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, "E1", row.Number)
		assert.Equal(t, "24h", row.AnalysisDelay)

		row.ID = 7
		row.UUID = id
		row.CreatedAt = &created
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]sampleRow{row}))
	})

	store := NewSampleRepoWith(client)
	sample := &model.Sample{
		FormID:             3,
		Number:             "E1",
		Status:             model.SamplePending,
		AnalysisDelayClass: model.Delay24h,
	}
	require.NoError(t, store.Create(context.Background(), sample))
	assert.EqualValues(t, 7, sample.ID)
	assert.Equal(t, id, sample.UUID)
	assert.Equal(t, created, sample.CreatedAt)
}

func TestSampleUpdateTranslatesLegacyFields(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "eq.7", r.URL.Query().Get("id"))

		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "48h", patch["analysisDelay"])
		assert.Equal(t, "lundi", patch["readingDay"])
		assert.NotContains(t, patch, "analysis_delay_class")

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]sampleRow{{ID: 7}}))
	})

	store := NewSampleRepoWith(client)
	err := store.Update(context.Background(), 7, map[string]any{
		"analysis_delay_class": "48h",
		"reading_day":          "lundi",
	})
	require.NoError(t, err)
}

func TestSampleUpdateNoMatchIsNotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]sampleRow{}))
	})

	store := NewSampleRepoWith(client)
	err := store.Update(context.Background(), 99, map[string]any{"status": "in_progress"})
	assert.ErrorIs(t, err, code.SampleNotFound)
}

func TestSampleListActiveFilter(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "not.in.(completed,rejected)", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]sampleRow{
			{ID: 1, Number: "E1", Status: "pending"},
			{ID: 2, Number: "E2", Status: "waiting_entero"},
		}))
	})

	store := NewSampleRepoWith(client)
	samples, err := store.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, model.SampleWaitingEntero, samples[1].Status)
}

func TestServerErrorMapsToStoreUnavailable(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	store := NewSampleRepoWith(client)
	_, err := store.ListActive(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, code.StoreUnavailable)
}

func TestConflictMapsToDuplicateNumber(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"23505"}`, http.StatusConflict)
	})

	store := NewSampleRepoWith(client)
	err := store.Create(context.Background(), &model.Sample{Number: "E1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, code.DuplicateSampleNumber)
}

func TestFormCreateInsertsSamplesBatch(t *testing.T) {
	var sampleBatch []sampleRow
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/v1/form_samples":
			var row formRow
			require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
			assert.Equal(t, "R1", row.Site)
			row.ID = 11
			require.NoError(t, json.NewEncoder(w).Encode([]formRow{row}))
		case "/rest/v1/samples":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sampleBatch))
			for i := range sampleBatch {
				sampleBatch[i].ID = int64(100 + i)
			}
			require.NoError(t, json.NewEncoder(w).Encode(sampleBatch))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	store := NewFormRepoWith(client)
	form := &model.SampleForm{
		Site:           "R1",
		CollectionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:         model.FormDraft,
		Samples: []*model.Sample{
			{Number: "E1", Status: model.SamplePending},
			{Number: "E2", Status: model.SamplePending},
		},
	}
	require.NoError(t, store.Create(context.Background(), form))
	assert.EqualValues(t, 11, form.ID)

	require.Len(t, sampleBatch, 2)
	for _, row := range sampleBatch {
		assert.EqualValues(t, 11, row.FormID)
	}
	assert.EqualValues(t, 100, form.Samples[0].ID)
	assert.EqualValues(t, 101, form.Samples[1].ID)
}

func TestFormListPagesAndCounts(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "10", q.Get("offset"))
		assert.Equal(t, "eq.R2", q.Get("site"))
		assert.Equal(t, "created_at.desc", q.Get("order"))
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "10-19/42")
		require.NoError(t, json.NewEncoder(w).Encode([]formRow{
			{ID: 21, Site: "R2", Status: "draft"},
		}))
	})

	store := NewFormRepoWith(client)
	forms, total, err := store.List(context.Background(), &repo.FormQuery{
		Site:     "R2",
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, total)
	require.Len(t, forms, 1)
	assert.Equal(t, model.FormDraft, forms[0].Status)
}

func TestFormGetByUUIDLoadsSamples(t *testing.T) {
	formID := uuid.MustFromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/v1/form_samples":
			assert.Equal(t, "eq."+formID.String(), r.URL.Query().Get("uuid"))
			require.NoError(t, json.NewEncoder(w).Encode([]formRow{
				{ID: 5, UUID: formID, Site: "BK", Status: "waiting_reading"},
			}))
		case "/rest/v1/samples":
			assert.Equal(t, "eq.5", r.URL.Query().Get("form_id"))
			assert.Equal(t, "position.asc,id.asc", r.URL.Query().Get("order"))
			require.NoError(t, json.NewEncoder(w).Encode([]sampleRow{
				{ID: 1, Number: "E1", Status: "waiting_entero", Position: 1},
			}))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	store := NewFormRepoWith(client)
	form, err := store.GetByUUID(context.Background(), formID, true)
	require.NoError(t, err)
	assert.Equal(t, "BK", form.Site)
	require.Len(t, form.Samples, 1)
	assert.Equal(t, "E1", form.Samples[0].Number)
}

func TestFormGetByUUIDMissing(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]formRow{}))
	})

	store := NewFormRepoWith(client)
	_, err := store.GetByUUID(context.Background(), uuid.Nil, false)
	assert.ErrorIs(t, err, code.FormNotFound)
}

func TestPlanningListPlannedFilters(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "eq.R1", q.Get("site"))
		assert.Equal(t, "eq.23", q.Get("semaine"))
		assert.Equal(t, "jour_semaine.asc", q.Get("order"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]plannedRow{
			{ID: 1, Bacterium: "entero", Delay: "24h", Weekday: 1, Week: 23, Site: "R1"},
			{ID: 2, Bacterium: "levures5j", Delay: "5d", Weekday: 3, Week: 23, Site: "R1"},
		}))
	})

	store := NewPlanningRepoWith(client)
	planned, err := store.ListPlanned(context.Background(), "R1", 23)
	require.NoError(t, err)
	require.Len(t, planned, 2)
	assert.Equal(t, model.Delay5d, planned[1].DelayClass)
	assert.Equal(t, 3, planned[1].Weekday)
}

func TestContentRangeTotal(t *testing.T) {
	assert.EqualValues(t, 42, contentRangeTotal("0-19/42"))
	assert.EqualValues(t, 0, contentRangeTotal("*/0"))
	assert.EqualValues(t, -1, contentRangeTotal("0-19/*"))
	assert.EqualValues(t, -1, contentRangeTotal(""))
}
