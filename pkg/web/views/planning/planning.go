package planning

import (
	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/uuid"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/planning"
)

type Handle struct {
	pService planning.Service
}

func NewPlanningHandle() *Handle {
	return &Handle{pService: planning.New()}
}

type listPlannedReq struct {
	Site       string `form:"site"`
	WeekNumber int    `form:"week_number"`
}

type listOngoingReq struct {
	Site string `form:"site"`
}

type uuidURI struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

func (h *Handle) CreatePlanned(ctx *gin.Context) {
	req := &planning.PlannedReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.pService.CreatePlanned(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) ListPlanned(ctx *gin.Context) {
	req := &listPlannedReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.pService.ListPlanned(ctx, req.Site, req.WeekNumber)
	common.Reply(ctx, err, resp)
}

func (h *Handle) DeletePlanned(ctx *gin.Context) {
	req := &uuidURI{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.pService.DeletePlanned(ctx, req.UUID))
}

func (h *Handle) CreateOngoing(ctx *gin.Context) {
	req := &planning.OngoingReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.pService.CreateOngoing(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) ListOngoing(ctx *gin.Context) {
	req := &listOngoingReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.pService.ListOngoing(ctx, req.Site)
	common.Reply(ctx, err, resp)
}

func (h *Handle) UpdateOngoing(ctx *gin.Context) {
	req := &planning.OngoingPatchReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.pService.UpdateOngoing(ctx, req))
}

func (h *Handle) DeleteOngoing(ctx *gin.Context) {
	req := &uuidURI{}
	if err := ctx.ShouldBindUri(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.pService.DeleteOngoing(ctx, req.UUID))
}
