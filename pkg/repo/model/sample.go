package model

import (
	"time"
)

// Sample is one physical specimen under test. CreatedAt (from BaseModel)
// anchors all deadline math and is immutable after creation.
type Sample struct {
	BaseModel
	FormID int64  `gorm:"type:bigint;not null;uniqueIndex:idx_sample_form_number,priority:1" json:"form_id"`
	Number string `gorm:"type:varchar(32);not null;uniqueIndex:idx_sample_form_number,priority:2" json:"number"`

	Status SampleStatus `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`

	// Required before the owning form may enter analyses_in_progress.
	Program string `gorm:"type:varchar(255)" json:"program"`
	Label   string `gorm:"type:varchar(255)" json:"label"`
	Nature  string `gorm:"type:varchar(255)" json:"nature"`

	AnalysisDelayClass DelayClass `gorm:"type:varchar(8)" json:"analysis_delay_class"`

	// Computed by the deadline calculator, never user-editable.
	EnteroReadingDue *time.Time `gorm:"index" json:"entero_reading_due"`
	YeastReadingDue  *time.Time `gorm:"index" json:"yeast_reading_due"`

	// A recorded value makes the corresponding deadline irrelevant.
	Enterobacteria *string `gorm:"type:varchar(64)" json:"enterobacteria"`
	YeastMold      *string `gorm:"type:varchar(64)" json:"yeast_mold"`

	Smell   SensoryGrade `gorm:"type:varchar(2)" json:"smell"`
	Texture SensoryGrade `gorm:"type:varchar(2)" json:"texture"`
	Taste   SensoryGrade `gorm:"type:varchar(2)" json:"taste"`
	Aspect  SensoryGrade `gorm:"type:varchar(2)" json:"aspect"`

	ReadingDay string `gorm:"type:varchar(16)" json:"reading_day"`

	// Position preserves insertion order inside the owning form.
	Position int `gorm:"type:int;not null;default:0" json:"position"`
}

func (*Sample) TableName() string {
	return "samples"
}

// EnteroRecorded reports whether the enterobacteria reading was entered.
func (s *Sample) EnteroRecorded() bool {
	return s.Enterobacteria != nil && *s.Enterobacteria != ""
}

// YeastRecorded reports whether the yeast/mold reading was entered.
func (s *Sample) YeastRecorded() bool {
	return s.YeastMold != nil && *s.YeastMold != ""
}

// RequiredFieldsSet reports whether the coordinator filled the fields
// needed before analysis can start.
func (s *Sample) RequiredFieldsSet() bool {
	return s.Program != "" && s.Label != "" && s.Nature != ""
}

// BatchNumberSet carries the reagent lot numbers shared by all samples
// of a form. Purely descriptive, editable until form completion.
type BatchNumberSet struct {
	DiluentLot   string `gorm:"type:varchar(64)" json:"diluent_lot"`
	PetriDishLot string `gorm:"type:varchar(64)" json:"petri_dish_lot"`
	VRBGGelLot   string `gorm:"type:varchar(64)" json:"vrbg_gel_lot"`
	YGCGelLot    string `gorm:"type:varchar(64)" json:"ygc_gel_lot"`
}

// SampleForm is one submission batch: site + collection date + reference
// plus an ordered list of owned samples.
type SampleForm struct {
	BaseModel
	Site           string     `gorm:"type:varchar(16);not null;index" json:"site"`
	CollectionDate time.Time  `gorm:"not null" json:"collection_date"`
	Reference      string     `gorm:"type:varchar(64)" json:"reference"`
	Status         FormStatus `gorm:"type:varchar(32);not null;default:'draft';index" json:"status"`
	CreatedBy      string     `gorm:"type:varchar(64)" json:"created_by"`

	BatchNumbers BatchNumberSet `gorm:"embedded;embeddedPrefix:batch_" json:"batch_numbers"`

	Samples []*Sample `gorm:"foreignKey:FormID;references:ID" json:"samples,omitempty"`
}

func (*SampleForm) TableName() string {
	return "form_samples"
}
