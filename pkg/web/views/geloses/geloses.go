package geloses

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/geloses"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify/events"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/factory"
)

type Handle struct {
	selection *geloses.Selection
	msgCenter notify.MsgCenter
}

func NewGelosesHandle(ctx context.Context) *Handle {
	return &Handle{
		selection: geloses.NewSelection(ctx, factory.SelectionStore()),
		msgCenter: events.NewEvents(),
	}
}

type resolveReq struct {
	IDs []string `json:"ids" form:"ids"`
}

type toggleReq struct {
	ID string `json:"id" binding:"required"`
}

// Resolve returns the culture media and ISO norms implied by the given
// bacteria ids. Defaults to the current selection when no ids are sent.
func (h *Handle) Resolve(ctx *gin.Context) {
	req := &resolveReq{}
	if err := ctx.ShouldBind(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	ids := req.IDs
	if len(ids) == 0 {
		ids = h.selection.Selected()
	}
	common.ReplyOk(ctx, geloses.Resolve(ids))
}

func (h *Handle) Selected(ctx *gin.Context) {
	common.ReplyOk(ctx, gin.H{"selected": h.selection.Selected()})
}

func (h *Handle) Toggle(ctx *gin.Context) {
	req := &toggleReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if !geloses.Known(req.ID) {
		common.ReplyErr(ctx, code.ParamErr.WithMsgf("unknown bacterium %q", req.ID))
		return
	}
	selected, err := h.selection.Toggle(ctx, req.ID)
	if err != nil {
		logger.Errorf(ctx, "toggle selection err: %+v", err)
		common.ReplyErr(ctx, err)
		return
	}
	h.broadcast(ctx)
	common.ReplyOk(ctx, gin.H{"id": req.ID, "selected": selected})
}

func (h *Handle) Reset(ctx *gin.Context) {
	if err := h.selection.Reset(ctx); err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	h.broadcast(ctx)
	common.ReplyOk(ctx, gin.H{"selected": h.selection.Selected()})
}

func (h *Handle) broadcast(ctx *gin.Context) {
	if h.msgCenter == nil {
		return
	}
	if err := h.msgCenter.Broadcast(ctx, &notify.SendMsg{
		Channel: notify.SelectionUpdate,
		Data:    gin.H{"selected": h.selection.Selected()},
	}); err != nil {
		logger.Warnf(ctx, "broadcast selection update fail: %+v", err)
	}
}
