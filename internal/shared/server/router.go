package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-api/internal/services/health"
	"resume-api/internal/shared/config"
	"resume-api/internal/shared/metrics"
	"resume-api/internal/shared/server/middleware"
	"resume-api/internal/shared/server/respond"
)

// RouteRegistrar attaches feature routes to a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything NewRouter needs to wire routes.
type RouterDeps struct {
	Config        config.Config
	Health        *health.Service
	AuthHandler   RouteRegistrar
	ResumeHandler RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Metrics(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	root := r.Group("/")
	root.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status, ok := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	root.GET("/metrics", metrics.Handler())
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(root)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(root)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
