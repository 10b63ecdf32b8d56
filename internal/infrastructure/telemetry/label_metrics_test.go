package telemetry_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/showroom/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	_ "gorm.io/driver/sqlite"
)

func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestLabelMetrics_RecordRender(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := telemetry.NewLabelMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRender(ctx, "standard", 40*time.Millisecond, nil)
	m.RecordRender(ctx, "standard", 10*time.Millisecond, nil)
	m.RecordRender(ctx, "legacy", 5*time.Millisecond, errors.New("boom"))

	metrics := collect(t, reader)
	rendered := metrics["labels_rendered_total"]
	assert.Equal(t, int64(2), sumFor(t, rendered,
		telemetry.AttrResult.String("success"), telemetry.AttrVariant.String("standard")))
	assert.Equal(t, int64(1), sumFor(t, rendered,
		telemetry.AttrResult.String("failure"), telemetry.AttrVariant.String("legacy")))

	hist, ok := metrics["label_render_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestLabelMetrics_BatchStorageAndSheets(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := telemetry.NewLabelMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordBatch(ctx, "bounded", 4, 1)
	m.RecordBatch(ctx, "bounded", 2, 0)
	m.RecordStorageFailure(ctx, "delete")
	m.RecordSheet(ctx, "pdf", 6)

	metrics := collect(t, reader)
	assert.Equal(t, int64(1), sumFor(t, metrics["label_batch_failures_total"], telemetry.AttrPolicy.String("bounded")))
	assert.Equal(t, int64(1), sumFor(t, metrics["label_storage_failures_total"], telemetry.AttrOperation.String("delete")))
	assert.Equal(t, int64(1), sumFor(t, metrics["label_sheets_exported_total"], telemetry.AttrFormat.String("pdf")))
	assert.Contains(t, metrics, "label_batch_size")
	assert.Contains(t, metrics, "label_sheet_labels")
}

func TestLabelMetrics_NilIsNoop(t *testing.T) {
	var m *telemetry.LabelMetrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordRender(ctx, "standard", time.Second, nil)
		m.RecordBatch(ctx, "grid", 1, 1)
		m.RecordStorageFailure(ctx, "put")
		m.RecordSheet(ctx, "html", 1)
	})
}

func TestRegisterDBPoolMetrics(t *testing.T) {
	reader, provider := newTestMeter(t)

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, sqlDB.Ping())

	reg, err := telemetry.RegisterDBPoolMetrics(provider.Meter("test"), sqlDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Unregister() })

	metrics := collect(t, reader)
	gauge, ok := metrics["db_pool_open_connections"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(1), gauge.DataPoints[0].Value)
	assert.Contains(t, metrics, "db_pool_wait_count_total")
}
