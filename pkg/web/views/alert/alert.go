package alert

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/monitor"
)

type Handle struct {
	mon monitor.Service
}

func New(ctx context.Context) *Handle {
	return &Handle{mon: monitor.New(ctx)}
}

// Connect upgrades to the websocket alert feed.
func (h *Handle) Connect(ctx *gin.Context) {
	h.mon.Connect(ctx)
}

func (h *Handle) Close(ctx context.Context) {
	_ = h.mon.Close(ctx)
}
