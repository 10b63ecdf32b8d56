package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/showroom/backend/docs"
	labelingapp "github.com/showroom/backend/internal/application/labeling"
	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/infrastructure/cache"
	"github.com/showroom/backend/internal/infrastructure/config"
	"github.com/showroom/backend/internal/infrastructure/ecommerce"
	infralabeling "github.com/showroom/backend/internal/infrastructure/labeling"
	"github.com/showroom/backend/internal/infrastructure/logger"
	"github.com/showroom/backend/internal/infrastructure/persistence"
	"github.com/showroom/backend/internal/infrastructure/printing"
	"github.com/showroom/backend/internal/infrastructure/storage"
	"github.com/showroom/backend/internal/infrastructure/telemetry"
	"github.com/showroom/backend/internal/interfaces/http/handler"
	"github.com/showroom/backend/internal/interfaces/http/middleware"
	"github.com/showroom/backend/internal/interfaces/http/router"
)

//	@title			Showroom Label API
//	@version		1.0
//	@description	Generates QR product labels, printable label sheets and the label history.

//	@contact.name	Showroom Backend
//	@contact.email	backend@showroom.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, telemetry.FromConfig(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	logLevel, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		logLevel = zapcore.InfoLevel
	}
	log = providers.Logs.Bridge(log, logLevel)
	meter := providers.Meter.Meter()

	log.Info("Starting label service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("variant", cfg.Label.Variant),
		zap.String("storage", cfg.Storage.Driver),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	dbTracing := telemetry.NewDBTracing(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	if reg, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB); err != nil {
		log.Warn("Failed to register pool metrics", zap.Error(err))
	} else {
		defer func() { _ = reg.Unregister() }()
	}
	log.Info("Database connected successfully")

	productRepo := persistence.NewGormProductRepository(db.DB)
	historyRepo := persistence.NewGormLabelRecordRepository(db.DB)

	// Label artifacts
	store, err := storage.NewArtifactStore(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize label storage", zap.Error(err))
	}

	// Rendering
	renderer, err := newRenderer(cfg.Label, log)
	if err != nil {
		log.Fatal("Failed to initialize label renderer", zap.Error(err))
	}
	generator := infralabeling.NewBatchLabelPrinter(renderer,
		labeling.BoundedBatch{Max: cfg.Label.BatchMax},
		infralabeling.WithWorkers(cfg.Label.Workers),
		infralabeling.WithBatchLogger(log),
	)
	sheets := infralabeling.NewBatchLabelPrinter(renderer,
		labeling.UnboundedGridBatch{},
		infralabeling.WithWorkers(cfg.Label.Workers),
		infralabeling.WithBatchLogger(log),
	)

	labelService := labelingapp.NewLabelService(productRepo, historyRepo, store, renderer, generator, sheets,
		labelingapp.ServiceConfig{BaseURL: cfg.Label.BaseURL, Variant: cfg.Label.Variant}, log)

	labelMetrics, err := telemetry.NewLabelMetrics(meter)
	if err != nil {
		log.Warn("Failed to create label metrics", zap.Error(err))
	} else {
		labelService.SetLabelMetrics(labelMetrics)
	}

	chrome, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		RemoteURL:      cfg.Printing.ChromeRemoteURL,
		Headless:       true,
		DisableGPU:     true,
		NoSandbox:      cfg.Printing.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Warn("PDF sheets disabled", zap.Error(err))
	} else {
		defer func() { _ = chrome.Close() }()
		labelService.SetPDFExporter(printing.NewSheetExporter(chrome, log))
	}

	// Storefront catalog
	if cfg.Magento.Enabled {
		brands := cache.NewBrandCache(ctx, cfg.Redis, log)
		defer func() { _ = brands.Close() }()

		magento, err := ecommerce.NewMagentoAdapter(ecommerce.NewMagentoConfig(cfg.Magento), brands, log)
		if err != nil {
			log.Fatal("Failed to initialize Magento adapter", zap.Error(err))
		}
		labelService.SetRemoteCatalog(magento)
		log.Info("Magento lookup enabled", zap.String("base_url", cfg.Magento.BaseURL))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engineCfg := router.Config{
		HTTP:           cfg.HTTP,
		Swagger:        cfg.Swagger,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		Meter:          meter,
	}
	if cfg.Storage.Driver == config.StorageDriverLocal {
		engineCfg.FilesDir = cfg.Storage.LocalPath
		engineCfg.FilesPath = filesPath(cfg.Storage.LocalBaseURL)
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
		engineCfg.RateLimiter = limiter
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine := router.New(engineCfg, router.Handlers{
		Label:   handler.NewLabelHandler(labelService),
		Magento: handler.NewMagentoHandler(labelService),
		Health:  handler.NewHealthHandler(sqlDB, telemetry.ServiceVersion),
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// newRenderer builds the renderer for the configured label variant
func newRenderer(cfg config.LabelConfig, log *zap.Logger) (labeling.Renderer, error) {
	if cfg.Variant == config.LabelVariantLegacy {
		legacy, err := infralabeling.NewLegacyLabelRenderer()
		if err != nil {
			return nil, err
		}
		return legacy, nil
	}

	size, err := labeling.NewLabelSize(cfg.WidthCM, cfg.HeightCM, cfg.DPI)
	if err != nil {
		return nil, err
	}

	opts := []infralabeling.RendererOption{
		infralabeling.WithLogger(log),
		infralabeling.WithFontSize(cfg.FontSize),
	}
	if cfg.LogoPath != "" {
		opts = append(opts, infralabeling.WithLogo(
			infralabeling.NewCachedLogoSource(infralabeling.NewFileLogoSource(cfg.LogoPath))))
	} else {
		log.Warn("Label logo not configured, rendering labels without logo",
			zap.String("setting", "label.logo_path"))
	}
	qr, err := infralabeling.NewQrLabelRenderer(labeling.ComputeGeometry(size), opts...)
	if err != nil {
		return nil, err
	}
	return qr, nil
}

// filesPath returns the route prefix local artifacts are served under
func filesPath(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" || u.Path[0] != '/' {
		return "/files"
	}
	return u.Path
}
