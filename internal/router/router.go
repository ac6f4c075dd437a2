package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	health    Handler
	authH     Handler
	protected []Handler
}

type RouterConfig struct {
	RequestTimeout time.Duration
	RequireAuth    bool
	RateLimit      *middleware.RateLimiterConfig
	CORSConfig     middleware.CORSConfig
	SizeLimit      middleware.SizeLimitConfig
	// Metrics observes every request when set.
	Metrics gin.HandlerFunc
}

// NewRouter builds the engine and its middleware chain. Handlers in protected
// sit behind basic auth when config.RequireAuth is set; health and authH never do.
func NewRouter(
	auth *middleware.AuthMiddleware,
	health Handler,
	authH Handler,
	protected []Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterTagNames()

	engine := gin.New()

	r := &Router{
		engine:    engine,
		auth:      auth,
		health:    health,
		authH:     authH,
		protected: protected,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
	)
	if config.Metrics != nil {
		engine.Use(config.Metrics)
	}

	timeout := middleware.DefaultTimeoutConfig()
	if config.RequestTimeout > 0 {
		timeout.Duration = config.RequestTimeout
	}
	engine.Use(
		middleware.Timeout(timeout),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(config.SizeLimit),
	)

	if config.RateLimit != nil {
		engine.Use(middleware.NewRateLimiter(*config.RateLimit).RateLimit())
	}

	r.setup(config.RequireAuth)
	return r
}

func (r *Router) setup(requireAuth bool) {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.health.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)

	protected := api.Group("")
	if requireAuth && r.auth != nil {
		protected.Use(r.auth.BasicAuth())
	}
	for _, h := range r.protected {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
