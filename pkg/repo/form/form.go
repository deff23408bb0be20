package form

import (
	"context"
	"errors"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/db"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
	"gorm.io/gorm"
)

type formImpl struct {
	*db.Datastore
}

func New() repo.FormRepo {
	return &formImpl{Datastore: db.DB()}
}

// Create stores the form and its owned samples in one transaction, the
// association write is handled by gorm.
func (f *formImpl) Create(ctx context.Context, form *model.SampleForm) error {
	if err := f.DBWithContext(ctx).Create(form).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return code.DuplicateSampleNumber
		}
		return code.StoreUnavailable.WithErr(err)
	}
	return nil
}

func (f *formImpl) Update(ctx context.Context, id int64, patch map[string]any) error {
	res := f.DBWithContext(ctx).Model(&model.SampleForm{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return code.StoreUnavailable.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.FormNotFound
	}
	return nil
}

func (f *formImpl) GetByUUID(ctx context.Context, id uuid.UUID, withSamples bool) (*model.SampleForm, error) {
	form := &model.SampleForm{}
	q := f.DBWithContext(ctx)
	if withSamples {
		q = q.Preload("Samples", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, id ASC")
		})
	}
	err := q.Where("uuid = ?", id).First(form).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.FormNotFound
	}
	if err != nil {
		return nil, code.StoreUnavailable.WithErr(err)
	}
	return form, nil
}

func (f *formImpl) List(ctx context.Context, q *repo.FormQuery) ([]*model.SampleForm, int64, error) {
	tx := f.DBWithContext(ctx).Model(&model.SampleForm{})
	if q.Site != "" {
		tx = tx.Where("site = ?", q.Site)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, code.StoreUnavailable.WithErr(err)
	}

	var forms []*model.SampleForm
	err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&forms).Error
	if err != nil {
		return nil, 0, code.StoreUnavailable.WithErr(err)
	}
	return forms, total, nil
}
