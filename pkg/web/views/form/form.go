package form

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/form"
	impl "github.com/RIPRED14/lotfiv7-sub001/pkg/core/form/form"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
)

type Handle struct {
	fService form.Service
}

func NewFormHandle(ctx context.Context) *Handle {
	return &Handle{fService: impl.New(ctx)}
}

func (h *Handle) Create(ctx *gin.Context) {
	req := &form.CreateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Create form param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.fService.Create(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Update(ctx *gin.Context) {
	req := &form.UpdateReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.fService.Update(ctx, req))
}

func (h *Handle) BatchNumbers(ctx *gin.Context) {
	req := &form.BatchNumbersReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.fService.UpdateBatchNumbers(ctx, req))
}

func (h *Handle) Get(ctx *gin.Context) {
	req := &form.GetReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.fService.Get(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) List(ctx *gin.Context) {
	req := &form.ListReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.fService.List(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) AddSample(ctx *gin.Context) {
	req := &form.AddSampleReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.fService.AddSample(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) DuplicateSample(ctx *gin.Context) {
	req := &form.DuplicateSampleReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.fService.DuplicateSample(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) RemoveSample(ctx *gin.Context) {
	req := &form.RemoveSampleReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.fService.RemoveSample(ctx, req))
}

func (h *Handle) Transition(ctx *gin.Context) {
	req := &form.TransitionReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.fService.Transition(ctx, req)
	if err != nil {
		logger.Errorf(ctx, "form transition err: %+v", err)
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyOk(ctx, resp)
}
