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

type sampleStore struct {
	client *Client
}

func NewSampleRepo() repo.SampleRepo {
	return &sampleStore{client: NewClient()}
}

func NewSampleRepoWith(client *Client) repo.SampleRepo {
	return &sampleStore{client: client}
}

func (s *sampleStore) Create(ctx context.Context, sample *model.Sample) error {
	var rows []sampleRow
	if err := s.client.Insert(ctx, constant.TableSamples, sampleRowFrom(sample), &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return code.StoreUnavailable.WithMsg("insert returned no representation")
	}
	stored := rows[0].toModel()
	sample.ID = stored.ID
	sample.UUID = stored.UUID
	sample.CreatedAt = stored.CreatedAt
	sample.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *sampleStore) Update(ctx context.Context, id int64, patch map[string]any) error {
	var rows []sampleRow
	err := s.client.Update(ctx, constant.TableSamples,
		Eq("id", strconv.FormatInt(id, 10)),
		translatePatch(patch, sampleFieldToStore), &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return code.SampleNotFound
	}
	return nil
}

func (s *sampleStore) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	var rows []sampleRow
	if _, err := s.client.Query(ctx, constant.TableSamples,
		[]Match{Eq("uuid", id.String())}, "", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, code.SampleNotFound
	}
	return rows[0].toModel(), nil
}

func (s *sampleStore) ListByForm(ctx context.Context, formID int64) ([]*model.Sample, error) {
	var rows []sampleRow
	_, err := s.client.Query(ctx, constant.TableSamples,
		[]Match{Eq("form_id", strconv.FormatInt(formID, 10))},
		"position.asc,id.asc", &rows)
	if err != nil {
		return nil, err
	}
	return samplesFromRows(rows), nil
}

func (s *sampleStore) ListActive(ctx context.Context) ([]*model.Sample, error) {
	var rows []sampleRow
	_, err := s.client.Query(ctx, constant.TableSamples,
		[]Match{{Field: "status", Expr: "not.in.(completed,rejected)"}}, "", &rows)
	if err != nil {
		return nil, err
	}
	return samplesFromRows(rows), nil
}

func (s *sampleStore) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, constant.TableSamples, Eq("id", strconv.FormatInt(id, 10)))
}

func samplesFromRows(rows []sampleRow) []*model.Sample {
	samples := make([]*model.Sample, 0, len(rows))
	for i := range rows {
		samples = append(samples, rows[i].toModel())
	}
	return samples
}
