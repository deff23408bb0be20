package sample

import (
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type GetReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type ReadingsReq struct {
	UUID           uuid.UUID           `uri:"uuid" binding:"required"`
	Enterobacteria *string             `json:"enterobacteria"`
	YeastMold      *string             `json:"yeast_mold"`
	Smell          *model.SensoryGrade `json:"smell"`
	Texture        *model.SensoryGrade `json:"texture"`
	Taste          *model.SensoryGrade `json:"taste"`
	Aspect         *model.SensoryGrade `json:"aspect"`
	ReadingDay     *string             `json:"reading_day"`
}

type ClassifyReq struct {
	UUID  uuid.UUID        `uri:"uuid" binding:"required"`
	Class model.DelayClass `json:"class" binding:"required"`
}

type TransitionReq struct {
	UUID   uuid.UUID          `uri:"uuid" binding:"required"`
	Target model.SampleStatus `json:"target" binding:"required"`
}

type Resp struct {
	UUID               uuid.UUID          `json:"uuid"`
	FormID             int64              `json:"form_id"`
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
	Severity           string             `json:"severity"`
}

type AlertResp struct {
	SampleUUID uuid.UUID  `json:"sample_uuid"`
	Number     string     `json:"number"`
	Severity   string     `json:"severity"`
	EnteroDue  *time.Time `json:"entero_due,omitempty"`
	YeastDue   *time.Time `json:"yeast_due,omitempty"`
}
