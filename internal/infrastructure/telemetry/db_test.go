package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/showroom/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type tracedWidget struct {
	ID   uint
	Name string
}

func openTracedDB(t *testing.T, cfg telemetry.DBTracingConfig) (*gorm.DB, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&tracedWidget{}))

	cfg.TracerProvider = tp
	require.NoError(t, telemetry.NewDBTracing(cfg, zaptest.NewLogger(t)).Register(db))
	return db, recorder
}

func TestDBTracing_Disabled(t *testing.T) {
	db, recorder := openTracedDB(t, telemetry.DBTracingConfig{Enabled: false})

	require.NoError(t, db.Create(&tracedWidget{Name: "a"}).Error)
	assert.Empty(t, recorder.Ended())
}

func TestDBTracing_SpansPerStatement(t *testing.T) {
	db, recorder := openTracedDB(t, telemetry.DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Hour,
	})

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&tracedWidget{Name: "a"}).Error)
	var found []tracedWidget
	require.NoError(t, db.WithContext(ctx).Find(&found).Error)

	names := make([]string, 0)
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
		for _, kv := range s.Attributes() {
			assert.NotEqual(t, "db.slow_query", string(kv.Key))
		}
	}
	assert.Contains(t, names, "gorm.Create")
	assert.Contains(t, names, "gorm.Query")
}

func TestDBTracing_MarksSlowQueries(t *testing.T) {
	db, recorder := openTracedDB(t, telemetry.DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Nanosecond,
	})

	var found []tracedWidget
	require.NoError(t, db.WithContext(context.Background()).Find(&found).Error)

	var slow bool
	for _, s := range recorder.Ended() {
		if s.Name() != "gorm.Query" {
			continue
		}
		for _, kv := range s.Attributes() {
			if kv.Key == "db.slow_query" && kv.Value.AsBool() {
				slow = true
			}
		}
		require.NotEmpty(t, s.Events())
		assert.Equal(t, "slow_query_warning", s.Events()[0].Name)
	}
	assert.True(t, slow)
}
