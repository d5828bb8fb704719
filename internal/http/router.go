package api

import (
	stdhttp "net/http"

	intconfig "travel/internal/config"
	"travel/internal/domain"
	h "travel/internal/http/handlers"
	"travel/internal/http/middleware"
	"travel/internal/metrics"
	"travel/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	guard := []gin.HandlerFunc{middleware.AuthOptional()}
	if env.AuthEnabled {
		guard = []gin.HandlerFunc{
			middleware.AuthRequired(func(raw string) (domain.RequestContext, error) {
				return h.AuthService("").ParseToken(raw)
			}),
			middleware.RequireRoles(domain.RoleAdmin, domain.RoleOperator),
		}
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		api.POST("/auth/login", h.Login)

		api.GET("/trips", h.GetTrips)

		clients := api.Group("/clients")
		clients.GET("/:id/trips", h.GetClientTrips)
		clients.GET("/:id/trips/:tripId/ticket", h.GetRegistrationTicket)

		guarded := clients.Group("", guard...)
		guarded.POST("", h.CreateClient)
		guarded.PUT("/:id/trips/:tripId", h.RegisterClientForTrip)
		guarded.DELETE("/:id/trips/:tripId", h.UnregisterClientFromTrip)
	}

	h.SetRouter(r)
	return r
}
