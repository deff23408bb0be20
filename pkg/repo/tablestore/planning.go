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

type planningStore struct {
	client *Client
}

func NewPlanningRepo() repo.PlanningRepo {
	return &planningStore{client: NewClient()}
}

func NewPlanningRepoWith(client *Client) repo.PlanningRepo {
	return &planningStore{client: client}
}

func (p *planningStore) CreatePlanned(ctx context.Context, planned *model.PlannedAnalysis) error {
	var rows []plannedRow
	if err := p.client.Insert(ctx, constant.TablePlannedAnalyses, plannedRowFrom(planned), &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		planned.ID = rows[0].ID
		planned.UUID = rows[0].UUID
	}
	return nil
}

func (p *planningStore) ListPlanned(ctx context.Context, site string, weekNumber int) ([]*model.PlannedAnalysis, error) {
	var filters []Match
	if site != "" {
		filters = append(filters, Eq("site", site))
	}
	if weekNumber > 0 {
		filters = append(filters, Eq("semaine", strconv.Itoa(weekNumber)))
	}

	var rows []plannedRow
	if _, err := p.client.Query(ctx, constant.TablePlannedAnalyses, filters, "jour_semaine.asc", &rows); err != nil {
		return nil, err
	}
	planned := make([]*model.PlannedAnalysis, 0, len(rows))
	for i := range rows {
		planned = append(planned, rows[i].toModel())
	}
	return planned, nil
}

func (p *planningStore) DeletePlanned(ctx context.Context, id uuid.UUID) error {
	return p.client.Delete(ctx, constant.TablePlannedAnalyses, Eq("uuid", id.String()))
}

func (p *planningStore) CreateOngoing(ctx context.Context, ongoing *model.OngoingAnalysis) error {
	var rows []ongoingRow
	if err := p.client.Insert(ctx, constant.TableOngoingAnalyses, ongoingRowFrom(ongoing), &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		ongoing.ID = rows[0].ID
		ongoing.UUID = rows[0].UUID
	}
	return nil
}

func (p *planningStore) ListOngoing(ctx context.Context, site string) ([]*model.OngoingAnalysis, error) {
	var filters []Match
	if site != "" {
		filters = append(filters, Eq("site", site))
	}

	var rows []ongoingRow
	if _, err := p.client.Query(ctx, constant.TableOngoingAnalyses, filters, "created_at.desc", &rows); err != nil {
		return nil, err
	}
	ongoing := make([]*model.OngoingAnalysis, 0, len(rows))
	for i := range rows {
		ongoing = append(ongoing, rows[i].toModel())
	}
	return ongoing, nil
}

func (p *planningStore) UpdateOngoing(ctx context.Context, id int64, patch map[string]any) error {
	var rows []ongoingRow
	err := p.client.Update(ctx, constant.TableOngoingAnalyses,
		Eq("id", strconv.FormatInt(id, 10)), translatePatch(patch, ongoingFieldToStore), &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (p *planningStore) DeleteOngoing(ctx context.Context, id uuid.UUID) error {
	return p.client.Delete(ctx, constant.TableOngoingAnalyses, Eq("uuid", id.String()))
}
