package labeling

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/printing"
	"github.com/showroom/backend/internal/infrastructure/logger"
)

// DefaultBatchWorkers bounds how many labels are rendered at the same time
const DefaultBatchWorkers = 4

// BatchLabelPrinter renders several labels independently and arranges the
// successful ones on a print sheet according to its policy.
type BatchLabelPrinter struct {
	renderer labeling.Renderer
	policy   labeling.BatchPolicy
	page     printing.PageSetup
	workers  int
	logger   *zap.Logger
}

// BatchOption configures a BatchLabelPrinter
type BatchOption func(*BatchLabelPrinter)

// WithWorkers sets the maximum number of concurrent renders
func WithWorkers(n int) BatchOption {
	return func(p *BatchLabelPrinter) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithPage sets the page the sheet is laid out on
func WithPage(page printing.PageSetup) BatchOption {
	return func(p *BatchLabelPrinter) {
		p.page = page
	}
}

// WithBatchLogger sets the logger
func WithBatchLogger(logger *zap.Logger) BatchOption {
	return func(p *BatchLabelPrinter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewBatchLabelPrinter creates a printer that renders with renderer under policy
func NewBatchLabelPrinter(renderer labeling.Renderer, policy labeling.BatchPolicy, opts ...BatchOption) *BatchLabelPrinter {
	p := &BatchLabelPrinter{
		renderer: renderer,
		policy:   policy,
		page:     printing.LabelSheetPage(),
		workers:  DefaultBatchWorkers,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy returns the batch policy in effect
func (p *BatchLabelPrinter) Policy() labeling.BatchPolicy {
	return p.policy
}

// RenderBatch renders every input and returns one result per input, in input order.
// A failing input is reported in its result and never affects the others; the
// returned error only signals a batch the policy rejects as a whole.
func (p *BatchLabelPrinter) RenderBatch(ctx context.Context, inputs []labeling.ProductLabelInput) ([]labeling.BatchItemResult, error) {
	if err := p.policy.Check(len(inputs)); err != nil {
		return nil, err
	}

	results := make([]labeling.BatchItemResult, len(inputs))
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = p.renderOne(ctx, i, in)
			return nil
		})
	}
	_ = g.Wait()

	succeeded, failed := labeling.CountResults(results)
	p.logger.Info("Label batch rendered",
		zap.String("policy", p.policy.Name()),
		zap.Int("total", len(inputs)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)
	return results, nil
}

func (p *BatchLabelPrinter) renderOne(ctx context.Context, index int, in labeling.ProductLabelInput) labeling.BatchItemResult {
	ctx, log := logger.WithSKU(ctx, p.logger, in.SKU)

	result := labeling.BatchItemResult{Index: index, SKU: in.SKU}
	label, err := p.renderer.Render(ctx, in)
	if err != nil {
		log.Warn("Label render failed",
			zap.Int("index", index),
			zap.Error(err),
		)
		result.Err = err
		return result
	}
	result.Success = true
	result.Label = label
	return result
}

// BuildPrintSheet arranges labels on the printer's page using its policy grid
func (p *BatchLabelPrinter) BuildPrintSheet(labels []*labeling.RenderedLabel) (*labeling.PrintSheet, error) {
	return labeling.NewPrintSheet(labels, p.policy, p.page)
}
