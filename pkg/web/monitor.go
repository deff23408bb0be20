package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/auth"
	alertView "github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/alert"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/health"
)

// NewMonitor wires the monitor process surface: health probes plus the
// websocket alert feed.
func NewMonitor(ctx context.Context, g *gin.Engine) context.CancelFunc {
	installMiddleware(g)
	return installMonitorURL(ctx, g)
}

func installMonitorURL(ctx context.Context, g *gin.Engine) context.CancelFunc {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)

	handle := alertView.New(ctx)
	{
		v1 := api.Group("/v1/ws", auth.Auth())
		v1.GET("/alerts", handle.Connect)
	}

	return func() {
		handle.Close(ctx)
	}
}
