package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/showroom/backend/internal/infrastructure/config"
	"github.com/showroom/backend/internal/infrastructure/logger"
	"github.com/showroom/backend/internal/interfaces/http/dto"
	"github.com/showroom/backend/internal/interfaces/http/handler"
	"github.com/showroom/backend/internal/interfaces/http/middleware"
)

// HealthPath is served outside the API group and kept out of the access log
const HealthPath = "/health"

// Config configures the HTTP engine
type Config struct {
	HTTP    config.HTTPConfig
	Swagger config.SwaggerConfig

	ServiceName    string
	TracingEnabled bool
	Meter          metric.Meter // nil disables HTTP metrics

	// FilesDir is the local artifact directory served under FilesPath.
	// Empty disables static file serving.
	FilesDir  string
	FilesPath string

	// RateLimiter throttles API routes per client IP when set
	RateLimiter *middleware.RateLimiter
}

// Handlers are the HTTP handlers mounted by New
type Handlers struct {
	Label   *handler.LabelHandler
	Magento *handler.MagentoHandler
	Health  *handler.HealthHandler
}

// New builds the gin engine with the global middleware stack and every route.
func New(cfg Config, h Handlers, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, HealthPath))
	engine.Use(middleware.HTTPMetrics(cfg.Meter))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "route not found", middleware.GetRequestID(c)))
	})

	if h.Health != nil {
		engine.GET(HealthPath, h.Health.Health)
	}

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	if cfg.FilesDir != "" && cfg.FilesPath != "" {
		engine.Static(cfg.FilesPath, cfg.FilesDir)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	if h.Label != nil {
		r.Register(LabelRoutes(h.Label))
	}
	if h.Magento != nil {
		r.Register(MagentoRoutes(h.Magento))
	}
	r.Setup()

	return engine
}

// LabelRoutes mounts the label endpoints under /labels
func LabelRoutes(h *handler.LabelHandler) *DomainGroup {
	labels := NewDomainGroup("labels", "/labels")
	labels.POST("/preview", h.PreviewLabel).
		POST("/generate", h.GenerateLabel).
		POST("/generate-multiple", h.GenerateLabels).
		POST("/print-sheet", h.PrintSheet).
		POST("/delete-multiple", h.DeleteLabels)

	history := labels.Group("history", "/history")
	history.GET("", h.ListHistory).
		GET("/:id", h.GetHistory)

	return labels
}

// MagentoRoutes mounts the storefront catalog lookup under /magento
func MagentoRoutes(h *handler.MagentoHandler) *DomainGroup {
	magento := NewDomainGroup("magento", "/magento")
	magento.GET("/products/:sku", h.GetProduct)
	return magento
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}
