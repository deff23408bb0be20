package repo

import (
	"context"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

// SampleRepo is the per-sample slice of the sample store. Updates take a
// column patch so every lifecycle transition maps to exactly one write.
type SampleRepo interface {
	Create(ctx context.Context, sample *model.Sample) error
	Update(ctx context.Context, id int64, patch map[string]any) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.Sample, error)
	ListByForm(ctx context.Context, formID int64) ([]*model.Sample, error)
	// ListActive returns samples not yet in a terminal status, for the
	// periodic alert re-evaluation.
	ListActive(ctx context.Context) ([]*model.Sample, error)
	Delete(ctx context.Context, id int64) error
}
