package planning

import (
	"context"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/db"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type planningImpl struct {
	*db.Datastore
}

func New() repo.PlanningRepo {
	return &planningImpl{Datastore: db.DB()}
}

func (p *planningImpl) CreatePlanned(ctx context.Context, planned *model.PlannedAnalysis) error {
	if err := p.DBWithContext(ctx).Create(planned).Error; err != nil {
		return code.StoreUnavailable.WithErr(err)
	}
	return nil
}

func (p *planningImpl) ListPlanned(ctx context.Context, site string, weekNumber int) ([]*model.PlannedAnalysis, error) {
	tx := p.DBWithContext(ctx).Model(&model.PlannedAnalysis{})
	if site != "" {
		tx = tx.Where("site = ?", site)
	}
	if weekNumber > 0 {
		tx = tx.Where("week_number = ?", weekNumber)
	}

	var planned []*model.PlannedAnalysis
	if err := tx.Order("weekday ASC, id ASC").Find(&planned).Error; err != nil {
		return nil, code.StoreUnavailable.WithErr(err)
	}
	return planned, nil
}

func (p *planningImpl) DeletePlanned(ctx context.Context, id uuid.UUID) error {
	res := p.DBWithContext(ctx).Where("uuid = ?", id).Delete(&model.PlannedAnalysis{})
	if res.Error != nil {
		return code.StoreUnavailable.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (p *planningImpl) CreateOngoing(ctx context.Context, ongoing *model.OngoingAnalysis) error {
	if err := p.DBWithContext(ctx).Create(ongoing).Error; err != nil {
		return code.StoreUnavailable.WithErr(err)
	}
	return nil
}

func (p *planningImpl) ListOngoing(ctx context.Context, site string) ([]*model.OngoingAnalysis, error) {
	tx := p.DBWithContext(ctx).Model(&model.OngoingAnalysis{})
	if site != "" {
		tx = tx.Where("site = ?", site)
	}

	var ongoing []*model.OngoingAnalysis
	if err := tx.Order("created_at DESC").Find(&ongoing).Error; err != nil {
		return nil, code.StoreUnavailable.WithErr(err)
	}
	return ongoing, nil
}

func (p *planningImpl) UpdateOngoing(ctx context.Context, id int64, patch map[string]any) error {
	res := p.DBWithContext(ctx).Model(&model.OngoingAnalysis{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return code.StoreUnavailable.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (p *planningImpl) DeleteOngoing(ctx context.Context, id uuid.UUID) error {
	res := p.DBWithContext(ctx).Where("uuid = ?", id).Delete(&model.OngoingAnalysis{})
	if res.Error != nil {
		return code.StoreUnavailable.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}
