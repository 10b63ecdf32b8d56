package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const queryStartKey = "telemetry:query_start"

// DBTracingConfig controls GORM span instrumentation.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // keep bound variables in db.statement
	SlowQueryThresh time.Duration
	DBSystem        string
	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider
}

// DBTracing registers otelgorm plus a slow-query marker on a GORM handle.
type DBTracing struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracing applies defaults to cfg.
func NewDBTracing(cfg DBTracingConfig, logger *zap.Logger) *DBTracing {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	return &DBTracing{config: cfg, logger: logger}
}

// gorm operations paired with the otelgorm callback that ends their span
var dbOperations = []struct {
	gormName string
	otelName string
}{
	{"gorm:create", "otel:after:create"},
	{"gorm:query", "otel:after:select"},
	{"gorm:update", "otel:after:update"},
	{"gorm:delete", "otel:after:delete"},
	{"gorm:row", "otel:after:row"},
	{"gorm:raw", "otel:after:raw"},
}

// Register installs the plugin. It is a no-op when tracing is disabled.
func (t *DBTracing) Register(db *gorm.DB) error {
	if !t.config.Enabled {
		t.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(t.config.DBSystem),
		otelgorm.WithoutMetrics(),
	}
	if !t.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if t.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(t.config.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm plugin: %w", err)
	}

	for _, op := range dbOperations {
		if err := registerBefore(db, op.gormName, "telemetry:before:"+op.gormName, t.markStart); err != nil {
			return err
		}
		if err := registerBetween(db, op.gormName, op.otelName, "telemetry:after:"+op.gormName, t.markSlow); err != nil {
			return err
		}
	}

	t.logger.Info("Database tracing enabled",
		zap.Duration("slow_query_threshold", t.config.SlowQueryThresh),
		zap.Bool("full_sql", t.config.LogFullSQL),
	)
	return nil
}

func registerBefore(db *gorm.DB, anchor, name string, fn func(*gorm.DB)) error {
	cb := db.Callback()
	var err error
	switch anchor {
	case "gorm:create":
		err = cb.Create().Before(anchor).Register(name, fn)
	case "gorm:query":
		err = cb.Query().Before(anchor).Register(name, fn)
	case "gorm:update":
		err = cb.Update().Before(anchor).Register(name, fn)
	case "gorm:delete":
		err = cb.Delete().Before(anchor).Register(name, fn)
	case "gorm:row":
		err = cb.Row().Before(anchor).Register(name, fn)
	case "gorm:raw":
		err = cb.Raw().Before(anchor).Register(name, fn)
	}
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}
	return nil
}

// registerBetween runs fn after the gorm operation and before otelgorm ends
// its span.
func registerBetween(db *gorm.DB, anchor, spanEnd, name string, fn func(*gorm.DB)) error {
	cb := db.Callback()
	var err error
	switch anchor {
	case "gorm:create":
		err = cb.Create().After(anchor).Before(spanEnd).Register(name, fn)
	case "gorm:query":
		err = cb.Query().After(anchor).Before(spanEnd).Register(name, fn)
	case "gorm:update":
		err = cb.Update().After(anchor).Before(spanEnd).Register(name, fn)
	case "gorm:delete":
		err = cb.Delete().After(anchor).Before(spanEnd).Register(name, fn)
	case "gorm:row":
		err = cb.Row().After(anchor).Before(spanEnd).Register(name, fn)
	case "gorm:raw":
		err = cb.Raw().After(anchor).Before(spanEnd).Register(name, fn)
	}
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}
	return nil
}

func (t *DBTracing) markStart(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

// markSlow flags spans slower than the configured threshold.
func (t *DBTracing) markSlow(db *gorm.DB) {
	if db.Statement == nil || db.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}

	v, ok := db.InstanceGet(queryStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > t.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", t.config.SlowQueryThresh.Milliseconds()),
		))
	}
}

// RegisterDBPoolMetrics reports sql.DBStats as observable instruments.
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	open, err := meter.Int64ObservableGauge("db_pool_open_connections",
		metric.WithDescription("Established connections, in use and idle"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db_pool_open_connections: %w", err)
	}
	inUse, err := meter.Int64ObservableGauge("db_pool_in_use_connections",
		metric.WithDescription("Connections currently in use"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db_pool_in_use_connections: %w", err)
	}
	idle, err := meter.Int64ObservableGauge("db_pool_idle_connections",
		metric.WithDescription("Idle connections"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db_pool_idle_connections: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_count_total",
		metric.WithDescription("Connections waited for"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db_pool_wait_count_total: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(open, int64(s.OpenConnections))
		o.ObserveInt64(inUse, int64(s.InUse))
		o.ObserveInt64(idle, int64(s.Idle))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, open, inUse, idle, waits)
}
