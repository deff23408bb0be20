package monitor

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/constant"
	coreMonitor "github.com/RIPRED14/lotfiv7-sub001/pkg/core/monitor"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify/events"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/db"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/redis"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/trace"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/utils"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/web"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:          "monitor",
		Long:         "Start the alert monitor (deadline re-evaluation + WebSocket feed)",
		SilenceUsage: true,
		PreRunE:      initMonitor,
		RunE:         newRouter,
		PostRunE:     cleanMonitor,
	}
}

func initMonitor(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:     fmt.Sprintf("%s-monitor", conf.Server.Platform),
		Version:         conf.Trace.Version,
		TraceEndpoint:   conf.Trace.TraceEndpoint,
		MetricEndpoint:  conf.Trace.MetricEndpoint,
		TraceProject:    conf.Trace.TraceProject,
		TraceInstanceID: conf.Trace.TraceInstanceID,
		TraceAK:         conf.Trace.TraceAK,
		TraceSK:         conf.Trace.TraceSK,
	})
	if conf.Store.Backend == config.StorePostgres {
		db.InitPostgres(cmd.Context(), &db.Config{
			Host: conf.Database.Host, Port: conf.Database.Port,
			User: conf.Database.User, PW: conf.Database.Password,
			DBName: conf.Database.Name, LogConf: db.LogConf{Level: conf.Log.LogLevel},
		})
	}
	redis.InitRedis(cmd.Context(), &redis.Redis{
		Host: conf.Redis.Host, Port: conf.Redis.Port,
		Password: conf.Redis.Password, DB: conf.Redis.DB,
	})
	return nil
}

func newRouter(cmd *cobra.Command, _ []string) error {
	rootCtx := cmd.Root().Context()

	router := gin.Default()
	cancel := web.NewMonitor(rootCtx, router)
	port := config.Global().Server.MonitorPort
	addr := ":" + strconv.Itoa(port)

	httpServer := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       120 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	fmt.Printf("Monitor server starting on http://0.0.0.0:%d\n", port)

	utils.SafelyGo(func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf(cmd.Context(), "start server err: %v\n", err)
		}
	}, func(err error) {
		logger.Errorf(cmd.Context(), "run http server err: %+v", err)
		os.Exit(1)
	})

	// the re-evaluation loop blocks until shutdown
	if err := coreMonitor.New(rootCtx).Run(rootCtx); err != nil {
		logger.Errorf(cmd.Context(), "monitor loop err: %+v", err)
	}

	cancel()
	ctx, cancelTimeout := context.WithTimeout(context.Background(), constant.DefaultShutdownTimeout)
	defer cancelTimeout()
	if err := httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("shut down server err: %+v", err)
	}
	return nil
}

func cleanMonitor(cmd *cobra.Command, _ []string) error {
	_ = events.NewEvents().Close(cmd.Context())
	redis.CloseRedis(cmd.Context())
	if config.Global().Store.Backend == config.StorePostgres {
		db.ClosePostgres(cmd.Context())
	}
	trace.CloseTrace(cmd.Context())
	return nil
}
