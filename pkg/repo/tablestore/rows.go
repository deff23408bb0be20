package tablestore

import (
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
	"gorm.io/datatypes"
)

// The store predates the internal model and keeps a few legacy
// camelCase columns. These maps translate internal column patches to
// store field names; unlisted keys pass through unchanged.
var (
	sampleFieldToStore = map[string]string{
		"analysis_delay_class": "analysisDelay",
		"reading_day":          "readingDay",
	}
	ongoingFieldToStore = map[string]string{
		"delay_class": "delai",
	}
	formFieldToStore = map[string]string{
		"collection_date":      "date_collecte",
		"created_by":           "createdBy",
		"batch_diluent_lot":    "diluent_lot",
		"batch_petri_dish_lot": "petri_dish_lot",
		"batch_vrbg_gel_lot":   "vrbg_gel_lot",
		"batch_ygc_gel_lot":    "ygc_gel_lot",
	}
)

func translatePatch(patch map[string]any, names map[string]string) map[string]any {
	out := make(map[string]any, len(patch))
	for k, v := range patch {
		if mapped, ok := names[k]; ok {
			k = mapped
		}
		out[k] = v
	}
	return out
}

type sampleRow struct {
	ID        int64      `json:"id,omitempty"`
	UUID      uuid.UUID  `json:"uuid,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	FormID           int64      `json:"form_id"`
	Number           string     `json:"number"`
	Status           string     `json:"status"`
	Program          string     `json:"program"`
	Label            string     `json:"label"`
	Nature           string     `json:"nature"`
	AnalysisDelay    string     `json:"analysisDelay,omitempty"`
	EnteroReadingDue *time.Time `json:"entero_reading_due,omitempty"`
	YeastReadingDue  *time.Time `json:"yeast_reading_due,omitempty"`
	Enterobacteria   *string    `json:"enterobacteria,omitempty"`
	YeastMold        *string    `json:"yeast_mold,omitempty"`
	Smell            string     `json:"smell,omitempty"`
	Texture          string     `json:"texture,omitempty"`
	Taste            string     `json:"taste,omitempty"`
	Aspect           string     `json:"aspect,omitempty"`
	ReadingDay       string     `json:"readingDay,omitempty"`
	Position         int        `json:"position"`
}

func sampleRowFrom(s *model.Sample) *sampleRow {
	row := &sampleRow{
		FormID:           s.FormID,
		Number:           s.Number,
		Status:           string(s.Status),
		Program:          s.Program,
		Label:            s.Label,
		Nature:           s.Nature,
		AnalysisDelay:    string(s.AnalysisDelayClass),
		EnteroReadingDue: s.EnteroReadingDue,
		YeastReadingDue:  s.YeastReadingDue,
		Enterobacteria:   s.Enterobacteria,
		YeastMold:        s.YeastMold,
		Smell:            string(s.Smell),
		Texture:          string(s.Texture),
		Taste:            string(s.Taste),
		Aspect:           string(s.Aspect),
		ReadingDay:       s.ReadingDay,
		Position:         s.Position,
	}
	if !s.UUID.IsNil() {
		row.UUID = s.UUID
	}
	return row
}

func (r *sampleRow) toModel() *model.Sample {
	s := &model.Sample{
		FormID:             r.FormID,
		Number:             r.Number,
		Status:             model.SampleStatus(r.Status),
		Program:            r.Program,
		Label:              r.Label,
		Nature:             r.Nature,
		AnalysisDelayClass: model.DelayClass(r.AnalysisDelay),
		EnteroReadingDue:   r.EnteroReadingDue,
		YeastReadingDue:    r.YeastReadingDue,
		Enterobacteria:     r.Enterobacteria,
		YeastMold:          r.YeastMold,
		Smell:              model.SensoryGrade(r.Smell),
		Texture:            model.SensoryGrade(r.Texture),
		Taste:              model.SensoryGrade(r.Taste),
		Aspect:             model.SensoryGrade(r.Aspect),
		ReadingDay:         r.ReadingDay,
		Position:           r.Position,
	}
	s.ID = r.ID
	s.UUID = r.UUID
	if r.CreatedAt != nil {
		s.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		s.UpdatedAt = *r.UpdatedAt
	}
	return s
}

type formRow struct {
	ID        int64      `json:"id,omitempty"`
	UUID      uuid.UUID  `json:"uuid,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	Site           string    `json:"site"`
	CollectionDate time.Time `json:"date_collecte"`
	Reference      string    `json:"reference,omitempty"`
	Status         string    `json:"status"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	DiluentLot     string    `json:"diluent_lot,omitempty"`
	PetriDishLot   string    `json:"petri_dish_lot,omitempty"`
	VRBGGelLot     string    `json:"vrbg_gel_lot,omitempty"`
	YGCGelLot      string    `json:"ygc_gel_lot,omitempty"`
}

func formRowFrom(f *model.SampleForm) *formRow {
	row := &formRow{
		Site:           f.Site,
		CollectionDate: f.CollectionDate,
		Reference:      f.Reference,
		Status:         string(f.Status),
		CreatedBy:      f.CreatedBy,
		DiluentLot:     f.BatchNumbers.DiluentLot,
		PetriDishLot:   f.BatchNumbers.PetriDishLot,
		VRBGGelLot:     f.BatchNumbers.VRBGGelLot,
		YGCGelLot:      f.BatchNumbers.YGCGelLot,
	}
	if !f.UUID.IsNil() {
		row.UUID = f.UUID
	}
	return row
}

func (r *formRow) toModel() *model.SampleForm {
	f := &model.SampleForm{
		Site:           r.Site,
		CollectionDate: r.CollectionDate,
		Reference:      r.Reference,
		Status:         model.FormStatus(r.Status),
		CreatedBy:      r.CreatedBy,
		BatchNumbers: model.BatchNumberSet{
			DiluentLot:   r.DiluentLot,
			PetriDishLot: r.PetriDishLot,
			VRBGGelLot:   r.VRBGGelLot,
			YGCGelLot:    r.YGCGelLot,
		},
	}
	f.ID = r.ID
	f.UUID = r.UUID
	if r.CreatedAt != nil {
		f.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		f.UpdatedAt = *r.UpdatedAt
	}
	return f
}

type plannedRow struct {
	ID        int64     `json:"id,omitempty"`
	UUID      uuid.UUID `json:"uuid,omitempty"`
	Bacterium string    `json:"bacterium"`
	Delay     string    `json:"delai,omitempty"`
	Weekday   int       `json:"jour_semaine"`
	Week      int       `json:"semaine"`
	Site      string    `json:"site"`
}

func plannedRowFrom(p *model.PlannedAnalysis) *plannedRow {
	return &plannedRow{
		Bacterium: p.Bacterium,
		Delay:     string(p.DelayClass),
		Weekday:   p.Weekday,
		Week:      p.WeekNumber,
		Site:      p.Site,
	}
}

func (r *plannedRow) toModel() *model.PlannedAnalysis {
	p := &model.PlannedAnalysis{
		Bacterium:  r.Bacterium,
		DelayClass: model.DelayClass(r.Delay),
		Weekday:    r.Weekday,
		WeekNumber: r.Week,
		Site:       r.Site,
	}
	p.ID = r.ID
	p.UUID = r.UUID
	return p
}

type ongoingRow struct {
	ID        int64          `json:"id,omitempty"`
	UUID      uuid.UUID      `json:"uuid,omitempty"`
	Bacterium string         `json:"bacterium"`
	Delay     string         `json:"delai,omitempty"`
	Site      string         `json:"site"`
	Status    string         `json:"status,omitempty"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
}

func ongoingRowFrom(o *model.OngoingAnalysis) *ongoingRow {
	return &ongoingRow{
		Bacterium: o.Bacterium,
		Delay:     string(o.DelayClass),
		Site:      o.Site,
		Status:    o.Status,
		Payload:   o.Payload,
	}
}

func (r *ongoingRow) toModel() *model.OngoingAnalysis {
	o := &model.OngoingAnalysis{
		Bacterium:  r.Bacterium,
		DelayClass: model.DelayClass(r.Delay),
		Site:       r.Site,
		Status:     r.Status,
		Payload:    r.Payload,
	}
	o.ID = r.ID
	o.UUID = r.UUID
	return o
}
