// Package planning manages the weekly analysis schedule and the board
// of analyses currently in flight.
package planning

import (
	"context"

	"gorm.io/datatypes"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/constant"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/factory"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type PlannedReq struct {
	Bacterium  string           `json:"bacterium" binding:"required"`
	DelayClass model.DelayClass `json:"delay_class"`
	Weekday    int              `json:"weekday" binding:"required"`
	WeekNumber int              `json:"week_number" binding:"required"`
	Site       string           `json:"site" binding:"required"`
}

type OngoingReq struct {
	Bacterium  string           `json:"bacterium" binding:"required"`
	DelayClass model.DelayClass `json:"delay_class"`
	Site       string           `json:"site" binding:"required"`
	Status     string           `json:"status"`
	Payload    datatypes.JSON   `json:"payload"`
}

type OngoingPatchReq struct {
	ID      int64          `json:"id" binding:"required"`
	Status  *string        `json:"status"`
	Payload datatypes.JSON `json:"payload"`
}

type Service interface {
	CreatePlanned(ctx context.Context, req *PlannedReq) (*model.PlannedAnalysis, error)
	ListPlanned(ctx context.Context, site string, weekNumber int) ([]*model.PlannedAnalysis, error)
	DeletePlanned(ctx context.Context, id uuid.UUID) error

	CreateOngoing(ctx context.Context, req *OngoingReq) (*model.OngoingAnalysis, error)
	ListOngoing(ctx context.Context, site string) ([]*model.OngoingAnalysis, error)
	UpdateOngoing(ctx context.Context, req *OngoingPatchReq) error
	DeleteOngoing(ctx context.Context, id uuid.UUID) error
}

type planningImpl struct {
	store repo.PlanningRepo
}

func New() Service {
	return &planningImpl{store: factory.PlanningRepo()}
}

// NewWith wires an explicit store. Used by tests.
func NewWith(store repo.PlanningRepo) Service {
	return &planningImpl{store: store}
}

func (p *planningImpl) CreatePlanned(ctx context.Context, req *PlannedReq) (*model.PlannedAnalysis, error) {
	if !constant.ValidSite(req.Site) {
		return nil, code.ParamErr.WithMsgf("unknown site %q", req.Site)
	}
	if req.Weekday < 1 || req.Weekday > 7 {
		return nil, code.ParamErr.WithMsgf("weekday %d out of range", req.Weekday)
	}
	if req.WeekNumber < 1 || req.WeekNumber > 53 {
		return nil, code.ParamErr.WithMsgf("week number %d out of range", req.WeekNumber)
	}
	if req.DelayClass != "" && !req.DelayClass.Valid() {
		return nil, code.ParamErr.WithMsgf("unknown delay class %q", req.DelayClass)
	}

	m := &model.PlannedAnalysis{
		Bacterium:  req.Bacterium,
		DelayClass: req.DelayClass,
		Weekday:    req.Weekday,
		WeekNumber: req.WeekNumber,
		Site:       req.Site,
	}
	if err := p.store.CreatePlanned(ctx, m); err != nil {
		return nil, code.PlanningErr.WithErr(err)
	}
	return m, nil
}

func (p *planningImpl) ListPlanned(ctx context.Context, site string, weekNumber int) ([]*model.PlannedAnalysis, error) {
	return p.store.ListPlanned(ctx, site, weekNumber)
}

func (p *planningImpl) DeletePlanned(ctx context.Context, id uuid.UUID) error {
	return p.store.DeletePlanned(ctx, id)
}

func (p *planningImpl) CreateOngoing(ctx context.Context, req *OngoingReq) (*model.OngoingAnalysis, error) {
	if !constant.ValidSite(req.Site) {
		return nil, code.ParamErr.WithMsgf("unknown site %q", req.Site)
	}

	m := &model.OngoingAnalysis{
		Bacterium:  req.Bacterium,
		DelayClass: req.DelayClass,
		Site:       req.Site,
		Status:     req.Status,
		Payload:    req.Payload,
	}
	if err := p.store.CreateOngoing(ctx, m); err != nil {
		return nil, code.PlanningErr.WithErr(err)
	}
	return m, nil
}

func (p *planningImpl) ListOngoing(ctx context.Context, site string) ([]*model.OngoingAnalysis, error) {
	return p.store.ListOngoing(ctx, site)
}

func (p *planningImpl) UpdateOngoing(ctx context.Context, req *OngoingPatchReq) error {
	patch := map[string]any{}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if len(req.Payload) > 0 {
		patch["payload"] = req.Payload
	}
	if len(patch) == 0 {
		return nil
	}
	return p.store.UpdateOngoing(ctx, req.ID, patch)
}

func (p *planningImpl) DeleteOngoing(ctx context.Context, id uuid.UUID) error {
	return p.store.DeleteOngoing(ctx, id)
}
