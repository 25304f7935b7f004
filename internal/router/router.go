package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dentalops/dental-admin-api/internal/handler"
	promhandler "github.com/dentalops/dental-admin-api/internal/handler/prometheus"
	"github.com/dentalops/dental-admin-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         Handler
	patientH      Handler
	chartH        Handler
	observationH  Handler
	procedureH    Handler
	prescriptionH Handler
	appointmentH  Handler
	healthH       *handler.HealthHandler
	prometheusH   *promhandler.Handler
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
	Timeout    time.Duration
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	patientH Handler,
	chartH Handler,
	observationH Handler,
	procedureH Handler,
	prescriptionH Handler,
	appointmentH Handler,
	healthH *handler.HealthHandler,
	prometheusH *promhandler.Handler,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         authH,
		patientH:      patientH,
		chartH:        chartH,
		observationH:  observationH,
		procedureH:    procedureH,
		prescriptionH: prescriptionH,
		appointmentH:  appointmentH,
		healthH:       healthH,
		prometheusH:   prometheusH,
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		prometheusH.Middleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: cfg.Timeout}),
	)

	engine.Use(middleware.CORS(cfg.CORSConfig))

	if cfg.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)
	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.healthH.HealthCheck)
		health.GET("/ready", r.healthH.HealthCheck)
		health.GET("/metrics", r.prometheusH.Handler())
	}
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.patientH.RegisterRoutes(rg)

	// Chart reads are cacheable; everything else is not.
	charts := rg.Group("")
	charts.Use(middleware.Cache(middleware.DefaultCacheConfig()))
	r.chartH.RegisterRoutes(charts)

	r.observationH.RegisterRoutes(rg)
	r.procedureH.RegisterRoutes(rg)
	r.prescriptionH.RegisterRoutes(rg)
	r.appointmentH.RegisterRoutes(rg)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
