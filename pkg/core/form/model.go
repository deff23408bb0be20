package form

import (
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type SampleIn struct {
	Number             string           `json:"number" binding:"required"`
	Program            string           `json:"program"`
	Label              string           `json:"label"`
	Nature             string           `json:"nature"`
	AnalysisDelayClass model.DelayClass `json:"analysis_delay_class"`
	ReadingDay         string           `json:"reading_day"`
}

type CreateReq struct {
	Site           string               `json:"site" binding:"required"`
	CollectionDate time.Time            `json:"collection_date" binding:"required"`
	Reference      string               `json:"reference"`
	BatchNumbers   model.BatchNumberSet `json:"batch_numbers"`
	Samples        []*SampleIn          `json:"samples"`
}

type UpdateReq struct {
	UUID           uuid.UUID  `uri:"uuid" binding:"required"`
	Site           *string    `json:"site"`
	CollectionDate *time.Time `json:"collection_date"`
	Reference      *string    `json:"reference"`
}

type BatchNumbersReq struct {
	UUID         uuid.UUID            `uri:"uuid" binding:"required"`
	BatchNumbers model.BatchNumberSet `json:"batch_numbers"`
}

type GetReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type ListReq struct {
	common.PageReq
	Site   string           `form:"site"`
	Status model.FormStatus `form:"status"`
}

type AddSampleReq struct {
	FormUUID uuid.UUID `uri:"uuid" binding:"required"`
	SampleIn
}

type DuplicateSampleReq struct {
	FormUUID   uuid.UUID `uri:"uuid" binding:"required"`
	SampleUUID uuid.UUID `uri:"sample_uuid" binding:"required"`
	Number     string    `json:"number" binding:"required"`
}

type RemoveSampleReq struct {
	FormUUID   uuid.UUID `uri:"uuid" binding:"required"`
	SampleUUID uuid.UUID `uri:"sample_uuid" binding:"required"`
}

type TransitionReq struct {
	UUID   uuid.UUID        `uri:"uuid" binding:"required"`
	Target model.FormStatus `json:"target" binding:"required"`
}

type SampleResp struct {
	UUID               uuid.UUID          `json:"uuid"`
	Number             string             `json:"number"`
	Status             model.SampleStatus `json:"status"`
	Program            string             `json:"program"`
	Label              string             `json:"label"`
	Nature             string             `json:"nature"`
	AnalysisDelayClass model.DelayClass   `json:"analysis_delay_class"`
	EnteroReadingDue   *time.Time         `json:"entero_reading_due,omitempty"`
	YeastReadingDue    *time.Time         `json:"yeast_reading_due,omitempty"`
	Enterobacteria     *string            `json:"enterobacteria,omitempty"`
	YeastMold          *string            `json:"yeast_mold,omitempty"`
	Smell              model.SensoryGrade `json:"smell,omitempty"`
	Texture            model.SensoryGrade `json:"texture,omitempty"`
	Taste              model.SensoryGrade `json:"taste,omitempty"`
	Aspect             model.SensoryGrade `json:"aspect,omitempty"`
	ReadingDay         string             `json:"reading_day,omitempty"`
	Position           int                `json:"position"`
	Severity           string             `json:"severity"`
}

type Resp struct {
	UUID           uuid.UUID            `json:"uuid"`
	Site           string               `json:"site"`
	CollectionDate time.Time            `json:"collection_date"`
	Reference      string               `json:"reference,omitempty"`
	Status         model.FormStatus     `json:"status"`
	CreatedBy      string               `json:"created_by,omitempty"`
	BatchNumbers   model.BatchNumberSet `json:"batch_numbers"`
	CreatedAt      time.Time            `json:"created_at"`
	Samples        []*SampleResp        `json:"samples,omitempty"`
}
