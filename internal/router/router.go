package router

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/chronic-risk-manager/community-health-frontend/internal/middleware"
	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
)

// Handler registers a view's routes on the shared engine.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled  bool
	RateLimit         rate.Limit
	RateBurst         int
	PrometheusEnabled bool
	MetricsPath       string
	MetricsPrefix     string
	TemplatesGlob     string
	StaticDir         string
}

type Router struct {
	engine  *gin.Engine
	store   *session.Store
	metrics *routerMetrics
}

// New assembles the engine: shared middleware, templates, the session
// guard, then every view handler. fallback serves unrecognized paths, the
// wildcard-route equivalent of the dashboard view.
func New(store *session.Store, cfg Config, fallback gin.HandlerFunc, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.SetFuncMap(templateFuncs())
	if cfg.TemplatesGlob != "" {
		engine.LoadHTMLGlob(cfg.TemplatesGlob)
	}
	if cfg.StaticDir != "" {
		engine.Static("/static", cfg.StaticDir)
	}

	r := &Router{
		engine:  engine,
		store:   store,
		metrics: initRouterMetrics(cfg.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)
	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	r.setupHealthCheck(cfg)

	guarded := engine.Group("")
	guarded.Use(middleware.Guard(store), middleware.Cache(middleware.ClinicalCacheConfig()))
	for _, h := range handlers {
		h.RegisterRoutes(guarded)
	}

	engine.NoRoute(middleware.Guard(store), middleware.Cache(middleware.ClinicalCacheConfig()), fallback)

	return r
}

func (r *Router) setupHealthCheck(cfg Config) {
	health := r.engine.Group("/health")
	{
		health.GET("/live", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		health.GET("/ready", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		})
	}
	if cfg.PrometheusEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("Jan 2, 2006")
		},
		"riskClass": func(risk string) string {
			switch risk {
			case "High":
				return "badge-high"
			case "Medium":
				return "badge-medium"
			case "Low":
				return "badge-low"
			default:
				return "badge-unknown"
			}
		},
		"statusClass": func(status string) string {
			switch status {
			case "Overdue":
				return "status-overdue"
			case "Completed":
				return "status-completed"
			default:
				return "status-pending"
			}
		},
	}
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "community_health"
	}
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
