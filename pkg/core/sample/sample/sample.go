package sample

import (
	"context"
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/alert"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/lifecycle"
	sample "github.com/RIPRED14/lotfiv7-sub001/pkg/core/sample"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/factory"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type sampleImpl struct {
	store repo.SampleRepo
	now   func() time.Time
}

func New(_ context.Context) sample.Service {
	return &sampleImpl{store: factory.SampleRepo(), now: time.Now}
}

// NewWith wires explicit collaborators. Used by tests.
func NewWith(store repo.SampleRepo, now func() time.Time) sample.Service {
	return &sampleImpl{store: store, now: now}
}

func (s *sampleImpl) Get(ctx context.Context, req *sample.GetReq) (*sample.Resp, error) {
	m, err := s.store.GetByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	return s.toResp(m), nil
}

func (s *sampleImpl) EnterReadings(ctx context.Context, req *sample.ReadingsReq) (*sample.Resp, error) {
	m, err := s.store.GetByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	if m.Status.Terminal() {
		return nil, code.SampleUpdateErr.WithMsgf(
			"sample %s is %s, readings are closed", m.Number, m.Status)
	}

	patch := map[string]any{}
	if req.Enterobacteria != nil {
		patch["enterobacteria"] = *req.Enterobacteria
	}
	if req.YeastMold != nil {
		patch["yeast_mold"] = *req.YeastMold
	}
	for field, grade := range map[string]*model.SensoryGrade{
		"smell":   req.Smell,
		"texture": req.Texture,
		"taste":   req.Taste,
		"aspect":  req.Aspect,
	} {
		if grade == nil {
			continue
		}
		if !grade.Valid() {
			return nil, code.ParamErr.WithMsgf("unknown %s grade %q", field, *grade)
		}
		patch[field] = *grade
	}
	if req.ReadingDay != nil {
		patch["reading_day"] = *req.ReadingDay
	}
	if len(patch) == 0 {
		return s.toResp(m), nil
	}

	if err := s.store.Update(ctx, m.ID, patch); err != nil {
		logger.Errorf(ctx, "enter readings fail sample: %s err: %+v", m.UUID, err)
		return nil, err
	}
	return s.Get(ctx, &sample.GetReq{UUID: req.UUID})
}

func (s *sampleImpl) Classify(ctx context.Context, req *sample.ClassifyReq) error {
	if !req.Class.Valid() {
		return code.ParamErr.WithMsgf("unknown delay class %q", req.Class)
	}
	m, err := s.store.GetByUUID(ctx, req.UUID)
	if err != nil {
		return err
	}
	if m.Status.Terminal() {
		return code.SampleUpdateErr.WithMsgf("sample %s is %s", m.Number, m.Status)
	}
	// once a deadline is stamped the class is frozen; changing it would
	// desync the due dates
	if m.EnteroReadingDue != nil || m.YeastReadingDue != nil {
		return code.SampleUpdateErr.WithMsg("reading deadline already stamped")
	}
	return s.store.Update(ctx, m.ID, map[string]any{"analysis_delay_class": req.Class})
}

func (s *sampleImpl) Transition(ctx context.Context, req *sample.TransitionReq) (*sample.Resp, error) {
	m, err := s.store.GetByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}

	change, err := lifecycle.Sample(m, req.Target)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, m.ID, change.Patch); err != nil {
		logger.Errorf(ctx, "transition sample fail: %s err: %+v", m.UUID, err)
		return nil, err
	}
	return s.Get(ctx, &sample.GetReq{UUID: req.UUID})
}

func (s *sampleImpl) Alerts(ctx context.Context) ([]*sample.AlertResp, error) {
	samples, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	alerts := make([]*sample.AlertResp, 0, len(samples))
	for _, m := range samples {
		severity := alert.Resolve(now, m)
		if severity == alert.None {
			continue
		}
		alerts = append(alerts, &sample.AlertResp{
			SampleUUID: m.UUID,
			Number:     m.Number,
			Severity:   severity.String(),
			EnteroDue:  m.EnteroReadingDue,
			YeastDue:   m.YeastReadingDue,
		})
	}
	return alerts, nil
}

func (s *sampleImpl) toResp(m *model.Sample) *sample.Resp {
	return &sample.Resp{
		UUID:               m.UUID,
		FormID:             m.FormID,
		Number:             m.Number,
		Status:             m.Status,
		Program:            m.Program,
		Label:              m.Label,
		Nature:             m.Nature,
		AnalysisDelayClass: m.AnalysisDelayClass,
		EnteroReadingDue:   m.EnteroReadingDue,
		YeastReadingDue:    m.YeastReadingDue,
		Enterobacteria:     m.Enterobacteria,
		YeastMold:          m.YeastMold,
		Smell:              m.Smell,
		Texture:            m.Texture,
		Taste:              m.Taste,
		Aspect:             m.Aspect,
		ReadingDay:         m.ReadingDay,
		Severity:           alert.Resolve(s.now(), m).String(),
	}
}
