package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/db"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/redis"
)

// Health is a simple health check (backward compatible).
func Health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Live is a lightweight liveness probe, the process is alive.
func Live(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready is a readiness probe verifying downstream dependencies. With
// the table backend the local postgres pool is never initialized and is
// not checked.
func Ready(g *gin.Context) {
	checks := gin.H{}
	healthy := true

	if config.Global().Store.Backend == config.StorePostgres {
		if ds := db.DB(); ds != nil {
			sqlDB, err := ds.DBIns().DB()
			if err != nil || sqlDB.PingContext(g.Request.Context()) != nil {
				checks["postgres"] = "unhealthy"
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		} else {
			checks["postgres"] = "not_initialized"
			healthy = false
		}
	}

	if rc := redis.GetClient(); rc != nil {
		if err := rc.Ping(g.Request.Context()).Err(); err != nil {
			checks["redis"] = "unhealthy"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not_initialized"
		healthy = false
	}

	status := http.StatusOK
	msg := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		msg = "not_ready"
	}

	g.JSON(status, gin.H{
		"status": msg,
		"checks": checks,
	})
}
