package api

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
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify/events"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/db"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/redis"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/trace"
	migrate "github.com/RIPRED14/lotfiv7-sub001/pkg/repo/migrate"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/utils"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/web"
)

func NewWeb() *cobra.Command {
	return &cobra.Command{
		Use:          "apiserver",
		Long:         "Start the sample-tracking API server",
		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         newRouter,
		PostRunE:     cleanWebResource,
	}
}

func NewMigrate() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Long:         "Run database migrations (postgres backend only)",
		SilenceUsage: true,
		PreRunE:      initMigrate,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate.Table(cmd.Root().Context())
		},
		PostRunE: func(cmd *cobra.Command, _ []string) error {
			db.ClosePostgres(cmd.Context())
			return nil
		},
	}
}

func initMigrate(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	db.InitPostgres(cmd.Context(), &db.Config{
		Host: conf.Database.Host, Port: conf.Database.Port,
		User: conf.Database.User, PW: conf.Database.Password,
		DBName: conf.Database.Name, LogConf: db.LogConf{Level: conf.Log.LogLevel},
	})
	return nil
}

func initWeb(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:     fmt.Sprintf("%s-%s", conf.Server.Service, conf.Server.Platform),
		Version:         conf.Trace.Version,
		TraceEndpoint:   conf.Trace.TraceEndpoint,
		MetricEndpoint:  conf.Trace.MetricEndpoint,
		TraceProject:    conf.Trace.TraceProject,
		TraceInstanceID: conf.Trace.TraceInstanceID,
		TraceAK:         conf.Trace.TraceAK,
		TraceSK:         conf.Trace.TraceSK,
	})
	// the table backend talks to the hosted store over HTTP; only the
	// postgres backend needs a local pool
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
	router := gin.Default()
	web.NewRouter(cmd.Root().Context(), router)
	conf := config.Global()
	port := conf.Server.Port
	addr := ":" + strconv.Itoa(port)

	httpServer := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       30 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	fmt.Printf("API server starting on http://0.0.0.0:%d\n", port)

	utils.SafelyGo(func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf(cmd.Context(), "start server err: %v\n", err)
		}
	}, func(err error) {
		logger.Errorf(cmd.Context(), "run http server err: %+v", err)
		os.Exit(1)
	})

	<-cmd.Context().Done()

	ctx, cancel := context.WithTimeout(context.Background(), constant.DefaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("shut down server err: %+v", err)
	}
	return nil
}

func cleanWebResource(cmd *cobra.Command, _ []string) error {
	_ = events.NewEvents().Close(cmd.Context())
	redis.CloseRedis(cmd.Context())
	if config.Global().Store.Backend == config.StorePostgres {
		db.ClosePostgres(cmd.Context())
	}
	trace.CloseTrace(cmd.Context())
	return nil
}
