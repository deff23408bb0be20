package repo

import (
	"context"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

// PlanningRepo persists the two auxiliary planning tables: scheduled
// analysis slots and in-flight analysis entries.
type PlanningRepo interface {
	CreatePlanned(ctx context.Context, p *model.PlannedAnalysis) error
	ListPlanned(ctx context.Context, site string, weekNumber int) ([]*model.PlannedAnalysis, error)
	DeletePlanned(ctx context.Context, id uuid.UUID) error

	CreateOngoing(ctx context.Context, o *model.OngoingAnalysis) error
	ListOngoing(ctx context.Context, site string) ([]*model.OngoingAnalysis, error)
	UpdateOngoing(ctx context.Context, id int64, patch map[string]any) error
	DeleteOngoing(ctx context.Context, id uuid.UUID) error
}
