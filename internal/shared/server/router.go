package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/applications"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/shared/storage/object"
	"jobboard-backend/internal/users"
)

const authRateLimitGroup = "AUTH"

// RouterDeps are the handlers and collaborators the router mounts.
type RouterDeps struct {
	Config             config.Config
	Tokens             middleware.TokenResolver
	UserHandler        *users.Handler
	JobHandler         *jobs.Handler
	ApplicationHandler *applications.Handler
	// Files is set when stored objects are served by this process.
	Files       object.ObjectStore
	RateLimiter *middleware.RateLimiter
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
	r.NoRoute(func(c *gin.Context) {
		respond.Fail(c, http.StatusNotFound, "Not found.", nil, nil)
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	if deps.Files != nil {
		registerFileRoutes(api, deps.Files)
	}

	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: authRateLimitGroup,
		Rules: map[string]middleware.RateLimitRule{
			authRateLimitGroup: {
				Rate:  deps.Config.AuthRateLimitRPS,
				Burst: deps.Config.AuthRateLimitBurst,
			},
		},
		Limiter: deps.RateLimiter,
	}))
	deps.UserHandler.RegisterPublicRoutes(public)

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Tokens))
	deps.UserHandler.RegisterRoutes(authed)
	deps.JobHandler.RegisterRoutes(authed)
	deps.ApplicationHandler.RegisterRoutes(authed)

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
