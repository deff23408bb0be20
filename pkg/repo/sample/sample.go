package sample

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

type sampleImpl struct {
	*db.Datastore
}

func New() repo.SampleRepo {
	return &sampleImpl{Datastore: db.DB()}
}

func (s *sampleImpl) Create(ctx context.Context, sample *model.Sample) error {
	if err := s.DBWithContext(ctx).Create(sample).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return code.DuplicateSampleNumber.WithMsgf("number %s", sample.Number)
		}
		return code.StoreUnavailable.WithErr(err)
	}
	return nil
}

func (s *sampleImpl) Update(ctx context.Context, id int64, patch map[string]any) error {
	res := s.DBWithContext(ctx).Model(&model.Sample{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return code.StoreUnavailable.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.SampleNotFound
	}
	return nil
}

func (s *sampleImpl) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	sample := &model.Sample{}
	err := s.DBWithContext(ctx).Where("uuid = ?", id).First(sample).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.SampleNotFound
	}
	if err != nil {
		return nil, code.StoreUnavailable.WithErr(err)
	}
	return sample, nil
}

func (s *sampleImpl) ListByForm(ctx context.Context, formID int64) ([]*model.Sample, error) {
	var samples []*model.Sample
	err := s.DBWithContext(ctx).
		Where("form_id = ?", formID).
		Order("position ASC, id ASC").
		Find(&samples).Error
	if err != nil {
		return nil, code.StoreUnavailable.WithErr(err)
	}
	return samples, nil
}

func (s *sampleImpl) ListActive(ctx context.Context) ([]*model.Sample, error) {
	var samples []*model.Sample
	err := s.DBWithContext(ctx).
		Where("status NOT IN ?", []model.SampleStatus{model.SampleCompleted, model.SampleRejected}).
		Find(&samples).Error
	if err != nil {
		return nil, code.StoreUnavailable.WithErr(err)
	}
	return samples, nil
}

func (s *sampleImpl) Delete(ctx context.Context, id int64) error {
	if err := s.DBWithContext(ctx).Where("id = ?", id).Delete(&model.Sample{}).Error; err != nil {
		return code.StoreUnavailable.WithErr(err)
	}
	return nil
}
