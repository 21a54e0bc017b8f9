package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medvault-backend/internal/chat"
	"medvault-backend/internal/records"
	"medvault-backend/internal/services/health"
	"medvault-backend/internal/shared/config"
	"medvault-backend/internal/shared/server/middleware"
	"medvault-backend/internal/shared/server/respond"
	"medvault-backend/internal/users"
)

// Chat replies are cheap to abuse; keep a small per-principal budget.
const (
	chatRatePerSecond = 1.0
	chatBurst         = 5
)

// RouterDeps carries everything the router needs wired in.
type RouterDeps struct {
	Config         config.Config
	RecordsHandler *records.Handler
	ChatHandler    *chat.Handler
	UsersHandler   *users.Handler
	Health         *health.Service
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// Direct retrieval of stored originals, local store only.
	if deps.Config.ObjectStoreType == "local" {
		r.StaticFS("/uploads", gin.Dir(deps.Config.LocalStoreDir, false))
	}

	api := r.Group("/api")
	api.Use(middleware.Auth())

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status(c.Request.Context()))
	})

	deps.UsersHandler.RegisterRoutes(api)
	deps.RecordsHandler.RegisterRoutes(api)

	chatGroup := api.Group("")
	chatGroup.Use(middleware.RateLimit(middleware.NewRateLimiter(chatRatePerSecond, chatBurst)))
	deps.ChatHandler.RegisterRoutes(chatGroup)

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
