package repo

import (
	"context"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type FormQuery struct {
	Site     string
	Status   model.FormStatus
	Page     int
	PageSize int
}

// FormRepo persists sample forms. Create stores the form together with
// its owned samples; reads may include the ordered sample list.
type FormRepo interface {
	Create(ctx context.Context, form *model.SampleForm) error
	Update(ctx context.Context, id int64, patch map[string]any) error
	GetByUUID(ctx context.Context, id uuid.UUID, withSamples bool) (*model.SampleForm, error)
	List(ctx context.Context, q *FormQuery) ([]*model.SampleForm, int64, error)
}
