package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// LabelMetrics holds the instruments for label rendering and printing.
// A nil *LabelMetrics records nothing.
type LabelMetrics struct {
	rendered        *Counter
	renderDuration  *Histogram
	batchSize       *Histogram
	batchFailures   *Counter
	storageFailures *Counter
	sheets          *Counter
	sheetLabels     *Histogram
}

// NewLabelMetrics creates every label instrument on meter.
func NewLabelMetrics(meter metric.Meter) (*LabelMetrics, error) {
	m := &LabelMetrics{}
	var err error

	if m.rendered, err = NewCounter(meter, "labels_rendered_total",
		"Labels rendered, by result and variant", "{label}"); err != nil {
		return nil, err
	}
	if m.renderDuration, err = NewHistogram(meter, "label_render_duration_seconds",
		"Time spent rendering one label", "s", RenderDurationBuckets); err != nil {
		return nil, err
	}
	if m.batchSize, err = NewHistogram(meter, "label_batch_size",
		"Products requested per batch", "{product}", BatchSizeBuckets); err != nil {
		return nil, err
	}
	if m.batchFailures, err = NewCounter(meter, "label_batch_failures_total",
		"Per-item failures inside batches", "{item}"); err != nil {
		return nil, err
	}
	if m.storageFailures, err = NewCounter(meter, "label_storage_failures_total",
		"Artifact store operations that failed", "{operation}"); err != nil {
		return nil, err
	}
	if m.sheets, err = NewCounter(meter, "label_sheets_exported_total",
		"Print sheets exported, by format", "{sheet}"); err != nil {
		return nil, err
	}
	if m.sheetLabels, err = NewHistogram(meter, "label_sheet_labels",
		"Labels placed on each exported sheet", "{label}", BatchSizeBuckets); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordRender records one render attempt.
func (m *LabelMetrics) RecordRender(ctx context.Context, variant string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.rendered.Inc(ctx, AttrResult.String(result), AttrVariant.String(variant))
	m.renderDuration.RecordDuration(ctx, d, AttrVariant.String(variant))
}

// RecordBatch records the size and failure count of one batch.
func (m *LabelMetrics) RecordBatch(ctx context.Context, policy string, total, failed int) {
	if m == nil {
		return
	}
	m.batchSize.Record(ctx, float64(total), AttrPolicy.String(policy))
	if failed > 0 {
		m.batchFailures.Add(ctx, int64(failed), AttrPolicy.String(policy))
	}
}

// RecordStorageFailure counts a failed put or delete.
func (m *LabelMetrics) RecordStorageFailure(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.storageFailures.Inc(ctx, AttrOperation.String(operation))
}

// RecordSheet records an exported print sheet.
func (m *LabelMetrics) RecordSheet(ctx context.Context, format string, labels int) {
	if m == nil {
		return
	}
	m.sheets.Inc(ctx, AttrFormat.String(format))
	m.sheetLabels.Record(ctx, float64(labels), AttrFormat.String(format))
}
