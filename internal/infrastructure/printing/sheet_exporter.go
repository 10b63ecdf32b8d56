package printing

import (
	"context"
	"fmt"

	"github.com/showroom/backend/internal/domain/labeling"
	infralabeling "github.com/showroom/backend/internal/infrastructure/labeling"
	"go.uber.org/zap"
)

// SheetExporter renders label print sheets to PDF
type SheetExporter struct {
	renderer PDFRenderer
	logger   *zap.Logger
}

// NewSheetExporter creates a SheetExporter backed by the given PDF renderer
func NewSheetExporter(renderer PDFRenderer, logger *zap.Logger) *SheetExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetExporter{renderer: renderer, logger: logger}
}

// ExportPDF lays out the sheet as HTML and prints it with the sheet's page setup.
func (e *SheetExporter) ExportPDF(ctx context.Context, sheet *labeling.PrintSheet) (*RenderResult, error) {
	if sheet == nil || len(sheet.Labels) == 0 {
		return nil, labeling.ErrEmptyBatch
	}

	doc, err := infralabeling.RenderSheetHTML(sheet)
	if err != nil {
		return nil, fmt.Errorf("render sheet html: %w", err)
	}

	result, err := e.renderer.Render(ctx, &RenderRequest{
		HTML:              string(doc),
		Page:              sheet.Page,
		PreferCSSPageSize: true,
		Title:             fmt.Sprintf("Etiquetas QR (%d)", len(sheet.Labels)),
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Label sheet exported",
		zap.Int("labels", len(sheet.Labels)),
		zap.String("policy", sheet.Policy),
		zap.Int("pages", result.PageCount))

	return result, nil
}
