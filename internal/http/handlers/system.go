package handlers

import (
	"net/http"
	"sync"

	intconfig "travel/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "travel api running"})
}

func DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	db := currentDeps().DB
	if err := intconfig.EnsureDB(ctx, db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database ping failed: " + err.Error()})
		return
	}
	if db == nil {
		db = intconfig.DB
	}
	var count int
	if err := sqlx.GetContext(ctx, db, &count, "SELECT COUNT(*) FROM Trip"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "trips_in_db": count})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
