package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/smilecare/clinic-api/internal/handler"
	"github.com/smilecare/clinic-api/internal/middleware"
)

// Handler registers routes that need no access guard.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// GuardedHandler registers routes behind the access middleware.
type GuardedHandler interface {
	RegisterRoutes(*gin.RouterGroup, *middleware.AccessMiddleware)
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	access      *middleware.AccessMiddleware
	authH       Handler
	patientH    GuardedHandler
	visitH      GuardedHandler
	noteH       GuardedHandler
	documentH   GuardedHandler
	queueH      GuardedHandler
	treatmentH  GuardedHandler
	assignmentH GuardedHandler
	inventoryH  GuardedHandler
	userH       GuardedHandler
	auditH      GuardedHandler
	h           *handler.Handler
	metrics     *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	access *middleware.AccessMiddleware,
	authH Handler,
	patientH GuardedHandler,
	visitH GuardedHandler,
	noteH GuardedHandler,
	documentH GuardedHandler,
	queueH GuardedHandler,
	treatmentH GuardedHandler,
	assignmentH GuardedHandler,
	inventoryH GuardedHandler,
	userH GuardedHandler,
	auditH GuardedHandler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:      engine,
		auth:        auth,
		access:      access,
		authH:       authH,
		patientH:    patientH,
		visitH:      visitH,
		noteH:       noteH,
		documentH:   documentH,
		queueH:      queueH,
		treatmentH:  treatmentH,
		assignmentH: assignmentH,
		inventoryH:  inventoryH,
		userH:       userH,
		auditH:      auditH,
		h:           h,
		metrics:     metrics,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: 30 * time.Second}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))
	engine.Use(middleware.SecurityHeaders(middleware.DefaultSecurityConfig()))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.patientH.RegisterRoutes(rg, r.access)
	r.visitH.RegisterRoutes(rg, r.access)
	r.noteH.RegisterRoutes(rg, r.access)
	r.documentH.RegisterRoutes(rg, r.access)
	r.queueH.RegisterRoutes(rg, r.access)
	r.treatmentH.RegisterRoutes(rg, r.access)
	r.assignmentH.RegisterRoutes(rg, r.access)
	r.inventoryH.RegisterRoutes(rg, r.access)
	r.userH.RegisterRoutes(rg, r.access)
	r.auditH.RegisterRoutes(rg, r.access)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
