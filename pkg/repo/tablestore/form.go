package tablestore

import (
	"context"
	"strconv"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/constant"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type formStore struct {
	client *Client
}

func NewFormRepo() repo.FormRepo {
	return &formStore{client: NewClient()}
}

func NewFormRepoWith(client *Client) repo.FormRepo {
	return &formStore{client: client}
}

// Create inserts the form row, then its samples as one batch. The
// store offers no cross-table transaction; a partial failure is
// surfaced and the caller retries.
func (f *formStore) Create(ctx context.Context, form *model.SampleForm) error {
	var rows []formRow
	if err := f.client.Insert(ctx, constant.TableForms, formRowFrom(form), &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return code.StoreUnavailable.WithMsg("insert returned no representation")
	}
	stored := rows[0].toModel()
	form.ID = stored.ID
	form.UUID = stored.UUID
	form.CreatedAt = stored.CreatedAt
	form.UpdatedAt = stored.UpdatedAt

	if len(form.Samples) == 0 {
		return nil
	}

	batch := make([]*sampleRow, 0, len(form.Samples))
	for _, s := range form.Samples {
		s.FormID = form.ID
		batch = append(batch, sampleRowFrom(s))
	}
	var sampleRows []sampleRow
	if err := f.client.Insert(ctx, constant.TableSamples, batch, &sampleRows); err != nil {
		return err
	}
	for i := range sampleRows {
		if i >= len(form.Samples) {
			break
		}
		stored := sampleRows[i].toModel()
		form.Samples[i].ID = stored.ID
		form.Samples[i].UUID = stored.UUID
		form.Samples[i].CreatedAt = stored.CreatedAt
	}
	return nil
}

func (f *formStore) Update(ctx context.Context, id int64, patch map[string]any) error {
	var rows []formRow
	err := f.client.Update(ctx, constant.TableForms,
		Eq("id", strconv.FormatInt(id, 10)),
		translatePatch(patch, formFieldToStore), &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return code.FormNotFound
	}
	return nil
}

func (f *formStore) GetByUUID(ctx context.Context, id uuid.UUID, withSamples bool) (*model.SampleForm, error) {
	var rows []formRow
	if _, err := f.client.Query(ctx, constant.TableForms,
		[]Match{Eq("uuid", id.String())}, "", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, code.FormNotFound
	}
	form := rows[0].toModel()

	if withSamples {
		var sampleRows []sampleRow
		_, err := f.client.Query(ctx, constant.TableSamples,
			[]Match{Eq("form_id", strconv.FormatInt(form.ID, 10))},
			"position.asc,id.asc", &sampleRows)
		if err != nil {
			return nil, err
		}
		form.Samples = samplesFromRows(sampleRows)
	}
	return form, nil
}

func (f *formStore) List(ctx context.Context, q *repo.FormQuery) ([]*model.SampleForm, int64, error) {
	filters := []Match{
		{Field: "limit", Expr: strconv.Itoa(q.PageSize)},
		{Field: "offset", Expr: strconv.Itoa((q.Page - 1) * q.PageSize)},
	}
	if q.Site != "" {
		filters = append(filters, Eq("site", q.Site))
	}
	if q.Status != "" {
		filters = append(filters, Eq("status", string(q.Status)))
	}

	var rows []formRow
	total, err := f.client.Query(ctx, constant.TableForms, filters, "created_at.desc", &rows)
	if err != nil {
		return nil, 0, err
	}
	if total < 0 {
		total = int64(len(rows))
	}

	forms := make([]*model.SampleForm, 0, len(rows))
	for i := range rows {
		forms = append(forms, rows[i].toModel())
	}
	return forms, total, nil
}
