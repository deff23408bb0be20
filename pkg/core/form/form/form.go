package form

import (
	"context"
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/constant"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/alert"
	form "github.com/RIPRED14/lotfiv7-sub001/pkg/core/form"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/lifecycle"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify/events"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/auth"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/factory"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type formImpl struct {
	formStore   repo.FormRepo
	sampleStore repo.SampleRepo
	msgCenter   notify.MsgCenter
	now         func() time.Time
}

func New(_ context.Context) form.Service {
	return &formImpl{
		formStore:   factory.FormRepo(),
		sampleStore: factory.SampleRepo(),
		msgCenter:   events.NewEvents(),
		now:         time.Now,
	}
}

// NewWith wires explicit collaborators. Used by tests.
func NewWith(formStore repo.FormRepo, sampleStore repo.SampleRepo,
	msgCenter notify.MsgCenter, now func() time.Time) form.Service {
	return &formImpl{
		formStore:   formStore,
		sampleStore: sampleStore,
		msgCenter:   msgCenter,
		now:         now,
	}
}

func (f *formImpl) Create(ctx context.Context, req *form.CreateReq) (*form.Resp, error) {
	if !constant.ValidSite(req.Site) {
		return nil, code.ParamErr.WithMsgf("unknown site %q", req.Site)
	}

	seen := map[string]bool{}
	samples := make([]*model.Sample, 0, len(req.Samples))
	for i, in := range req.Samples {
		if seen[in.Number] {
			return nil, code.DuplicateSampleNumber.WithMsg(in.Number)
		}
		seen[in.Number] = true
		samples = append(samples, sampleFromIn(in, i))
	}

	m := &model.SampleForm{
		Site:           req.Site,
		CollectionDate: req.CollectionDate,
		Reference:      req.Reference,
		Status:         model.FormDraft,
		BatchNumbers:   req.BatchNumbers,
		Samples:        samples,
	}
	if user := auth.GetCurrentUser(ctx); user != nil {
		m.CreatedBy = user.Name
	}

	if err := f.formStore.Create(ctx, m); err != nil {
		logger.Errorf(ctx, "create form fail: %+v", err)
		return nil, err
	}
	return f.toResp(m, true), nil
}

func (f *formImpl) Update(ctx context.Context, req *form.UpdateReq) error {
	m, err := f.formStore.GetByUUID(ctx, req.UUID, false)
	if err != nil {
		return err
	}
	if !m.Status.Editable() {
		return code.FormImmutable
	}

	patch := map[string]any{}
	if req.Site != nil {
		if !constant.ValidSite(*req.Site) {
			return code.ParamErr.WithMsgf("unknown site %q", *req.Site)
		}
		patch["site"] = *req.Site
	}
	if req.CollectionDate != nil {
		patch["collection_date"] = *req.CollectionDate
	}
	if req.Reference != nil {
		patch["reference"] = *req.Reference
	}
	if len(patch) == 0 {
		return nil
	}
	return f.formStore.Update(ctx, m.ID, patch)
}

func (f *formImpl) UpdateBatchNumbers(ctx context.Context, req *form.BatchNumbersReq) error {
	m, err := f.formStore.GetByUUID(ctx, req.UUID, false)
	if err != nil {
		return err
	}
	if m.Status == model.FormCompleted || m.Status == model.FormCancelled {
		return code.FormImmutable
	}
	return f.formStore.Update(ctx, m.ID, map[string]any{
		"batch_diluent_lot":    req.BatchNumbers.DiluentLot,
		"batch_petri_dish_lot": req.BatchNumbers.PetriDishLot,
		"batch_vrbg_gel_lot":   req.BatchNumbers.VRBGGelLot,
		"batch_ygc_gel_lot":    req.BatchNumbers.YGCGelLot,
	})
}

func (f *formImpl) Get(ctx context.Context, req *form.GetReq) (*form.Resp, error) {
	m, err := f.formStore.GetByUUID(ctx, req.UUID, true)
	if err != nil {
		return nil, err
	}
	return f.toResp(m, true), nil
}

func (f *formImpl) List(ctx context.Context, req *form.ListReq) (*common.PageResp[[]*form.Resp], error) {
	req.Normalize()
	if req.Status != "" && !req.Status.Valid() {
		return nil, code.ParamErr.WithMsgf("unknown form status %q", req.Status)
	}

	forms, total, err := f.formStore.List(ctx, &repo.FormQuery{
		Site:     req.Site,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*form.Resp, 0, len(forms))
	for _, m := range forms {
		items = append(items, f.toResp(m, false))
	}
	return &common.PageResp[[]*form.Resp]{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (f *formImpl) AddSample(ctx context.Context, req *form.AddSampleReq) (*form.SampleResp, error) {
	m, err := f.formStore.GetByUUID(ctx, req.FormUUID, true)
	if err != nil {
		return nil, err
	}
	if !m.Status.Editable() {
		return nil, code.FormImmutable
	}
	if numberTaken(m, req.Number) {
		return nil, code.DuplicateSampleNumber
	}

	s := sampleFromIn(&req.SampleIn, len(m.Samples))
	s.FormID = m.ID
	if err := f.sampleStore.Create(ctx, s); err != nil {
		return nil, err
	}
	return f.toSampleResp(s), nil
}

func (f *formImpl) DuplicateSample(ctx context.Context, req *form.DuplicateSampleReq) (*form.SampleResp, error) {
	m, err := f.formStore.GetByUUID(ctx, req.FormUUID, true)
	if err != nil {
		return nil, err
	}
	if !m.Status.Editable() {
		return nil, code.FormImmutable
	}

	src := findSample(m, req.SampleUUID)
	if src == nil {
		return nil, code.SampleNotFound
	}
	if numberTaken(m, req.Number) {
		return nil, code.DuplicateSampleNumber
	}

	dup := &model.Sample{
		FormID:             m.ID,
		Number:             req.Number,
		Status:             model.SamplePending,
		Program:            src.Program,
		Label:              src.Label,
		Nature:             src.Nature,
		AnalysisDelayClass: src.AnalysisDelayClass,
		ReadingDay:         src.ReadingDay,
		Position:           len(m.Samples),
	}
	if err := f.sampleStore.Create(ctx, dup); err != nil {
		return nil, err
	}
	return f.toSampleResp(dup), nil
}

func (f *formImpl) RemoveSample(ctx context.Context, req *form.RemoveSampleReq) error {
	m, err := f.formStore.GetByUUID(ctx, req.FormUUID, true)
	if err != nil {
		return err
	}
	if !m.Status.Editable() {
		return code.FormImmutable
	}

	s := findSample(m, req.SampleUUID)
	if s == nil {
		return code.SampleNotFound
	}
	return f.sampleStore.Delete(ctx, s.ID)
}

// Transition applies a lifecycle change set: sample due-date patches
// first, then the form status patch. The loaded models are never
// mutated, so a failed write leaves nothing half-applied in memory.
func (f *formImpl) Transition(ctx context.Context, req *form.TransitionReq) (*form.Resp, error) {
	m, err := f.formStore.GetByUUID(ctx, req.UUID, true)
	if err != nil {
		return nil, err
	}

	change, err := lifecycle.Form(m, req.Target)
	if err != nil {
		return nil, err
	}

	for sampleID, patch := range change.SamplePatches {
		if err := f.sampleStore.Update(ctx, sampleID, patch); err != nil {
			logger.Errorf(ctx, "stamp due dates fail form: %s sample: %d err: %+v",
				m.UUID, sampleID, err)
			return nil, err
		}
	}
	if err := f.formStore.Update(ctx, m.ID, change.FormPatch); err != nil {
		logger.Errorf(ctx, "transition form fail: %s err: %+v", m.UUID, err)
		return nil, err
	}

	updated, err := f.formStore.GetByUUID(ctx, req.UUID, true)
	if err != nil {
		return nil, err
	}

	if f.msgCenter != nil {
		if err := f.msgCenter.Broadcast(ctx, &notify.SendMsg{
			Channel:  notify.FormUpdate,
			FormUUID: updated.UUID,
			Site:     updated.Site,
			Data:     map[string]any{"status": updated.Status},
		}); err != nil {
			logger.Warnf(ctx, "broadcast form update fail: %+v", err)
		}
	}
	return f.toResp(updated, true), nil
}

func sampleFromIn(in *form.SampleIn, position int) *model.Sample {
	return &model.Sample{
		Number:             in.Number,
		Status:             model.SamplePending,
		Program:            in.Program,
		Label:              in.Label,
		Nature:             in.Nature,
		AnalysisDelayClass: in.AnalysisDelayClass,
		ReadingDay:         in.ReadingDay,
		Position:           position,
	}
}

func findSample(m *model.SampleForm, id uuid.UUID) *model.Sample {
	for _, s := range m.Samples {
		if s.UUID == id {
			return s
		}
	}
	return nil
}

// numberTaken reports whether a sample number is already used in the
// form. The postgres schema also enforces this with a composite index;
// the table backend has no such guarantee, so the service checks first.
func numberTaken(m *model.SampleForm, number string) bool {
	for _, s := range m.Samples {
		if s.Number == number {
			return true
		}
	}
	return false
}

func (f *formImpl) toResp(m *model.SampleForm, withSamples bool) *form.Resp {
	resp := &form.Resp{
		UUID:           m.UUID,
		Site:           m.Site,
		CollectionDate: m.CollectionDate,
		Reference:      m.Reference,
		Status:         m.Status,
		CreatedBy:      m.CreatedBy,
		BatchNumbers:   m.BatchNumbers,
		CreatedAt:      m.CreatedAt,
	}
	if withSamples {
		resp.Samples = make([]*form.SampleResp, 0, len(m.Samples))
		for _, s := range m.Samples {
			resp.Samples = append(resp.Samples, f.toSampleResp(s))
		}
	}
	return resp
}

func (f *formImpl) toSampleResp(s *model.Sample) *form.SampleResp {
	return &form.SampleResp{
		UUID:               s.UUID,
		Number:             s.Number,
		Status:             s.Status,
		Program:            s.Program,
		Label:              s.Label,
		Nature:             s.Nature,
		AnalysisDelayClass: s.AnalysisDelayClass,
		EnteroReadingDue:   s.EnteroReadingDue,
		YeastReadingDue:    s.YeastReadingDue,
		Enterobacteria:     s.Enterobacteria,
		YeastMold:          s.YeastMold,
		Smell:              s.Smell,
		Texture:            s.Texture,
		Taste:              s.Taste,
		Aspect:             s.Aspect,
		ReadingDay:         s.ReadingDay,
		Position:           s.Position,
		Severity:           alert.Resolve(f.now(), s).String(),
	}
}
