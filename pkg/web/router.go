package web

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/auth"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	formView "github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/form"
	gelosesView "github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/geloses"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/health"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/login"
	planningView "github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/planning"
	sampleView "github.com/RIPRED14/lotfiv7-sub001/pkg/web/views/sample"
)

func NewRouter(ctx context.Context, g *gin.Engine) {
	installMiddleware(g)
	installURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

func installURL(ctx context.Context, g *gin.Engine) {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)

	// Auth routes
	{
		l := login.NewLogin()
		authGroup := api.Group("/auth")
		authGroup.POST("/token", l.Token)
		authGroup.GET("/me", auth.Auth(), l.Me)
	}

	fHandle := formView.NewFormHandle(ctx)
	sHandle := sampleView.NewSampleHandle(ctx)
	gHandle := gelosesView.NewGelosesHandle(ctx)
	pHandle := planningView.NewPlanningHandle()

	v1 := api.Group("/v1", auth.Auth())

	// Forms: coordinator-managed
	{
		coordinator := auth.RequireRole(auth.RoleCoordinator)
		formRouter := v1.Group("/forms")
		formRouter.GET("", fHandle.List)
		formRouter.GET("/:uuid", fHandle.Get)
		formRouter.POST("", coordinator, fHandle.Create)
		formRouter.PUT("/:uuid", coordinator, fHandle.Update)
		formRouter.PUT("/:uuid/batch-numbers", coordinator, fHandle.BatchNumbers)
		formRouter.POST("/:uuid/transition", coordinator, fHandle.Transition)
		formRouter.POST("/:uuid/samples", coordinator, fHandle.AddSample)
		formRouter.POST("/:uuid/samples/:sample_uuid/duplicate", coordinator, fHandle.DuplicateSample)
		formRouter.DELETE("/:uuid/samples/:sample_uuid", coordinator, fHandle.RemoveSample)
	}

	// Samples: reading entry is open to technicians and coordinators
	{
		sampleRouter := v1.Group("/samples")
		sampleRouter.GET("/:uuid", sHandle.Get)
		sampleRouter.PUT("/:uuid/readings", sHandle.Readings)
		sampleRouter.PUT("/:uuid/classify", sHandle.Classify)
		sampleRouter.POST("/:uuid/transition", sHandle.Transition)
	}

	v1.GET("/alerts", sHandle.Alerts)

	// Geloses lookup and the shared bacteria selection
	{
		gelosesRouter := v1.Group("/geloses")
		gelosesRouter.POST("/resolve", gHandle.Resolve)
		gelosesRouter.GET("/selection", gHandle.Selected)
		gelosesRouter.POST("/selection/toggle", gHandle.Toggle)
		gelosesRouter.POST("/selection/reset", gHandle.Reset)
	}

	// Analysis planning
	{
		planningRouter := v1.Group("/planning")
		planningRouter.POST("/planned", pHandle.CreatePlanned)
		planningRouter.GET("/planned", pHandle.ListPlanned)
		planningRouter.DELETE("/planned/:uuid", pHandle.DeletePlanned)
		planningRouter.POST("/ongoing", pHandle.CreateOngoing)
		planningRouter.GET("/ongoing", pHandle.ListOngoing)
		planningRouter.PUT("/ongoing", pHandle.UpdateOngoing)
		planningRouter.DELETE("/ongoing/:uuid", pHandle.DeleteOngoing)
	}
}
