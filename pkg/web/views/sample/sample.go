package sample

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/sample"
	impl "github.com/RIPRED14/lotfiv7-sub001/pkg/core/sample/sample"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
)

type Handle struct {
	sService sample.Service
}

func NewSampleHandle(ctx context.Context) *Handle {
	return &Handle{sService: impl.New(ctx)}
}

func (h *Handle) Get(ctx *gin.Context) {
	req := &sample.GetReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.Get(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Readings(ctx *gin.Context) {
	req := &sample.ReadingsReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Readings param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.EnterReadings(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Classify(ctx *gin.Context) {
	req := &sample.ClassifyReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.sService.Classify(ctx, req))
}

func (h *Handle) Transition(ctx *gin.Context) {
	req := &sample.TransitionReq{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.Transition(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Alerts(ctx *gin.Context) {
	resp, err := h.sService.Alerts(ctx)
	common.Reply(ctx, err, resp)
}
