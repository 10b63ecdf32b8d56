// Package labeling provides the label use cases: previews, stored labels,
// print sheets and the label history.
package labeling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/showroom/backend/internal/domain/catalog"
	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/shared"
	infralabeling "github.com/showroom/backend/internal/infrastructure/labeling"
	"github.com/showroom/backend/internal/infrastructure/logger"
	"github.com/showroom/backend/internal/infrastructure/printing"
	"github.com/showroom/backend/internal/infrastructure/telemetry"
)

const spanService = "label"

// Service-level errors
var (
	ErrInvalidSheetFormat = shared.NewDomainError("INVALID_SHEET_FORMAT", "format must be html or pdf")
	ErrPDFUnavailable     = shared.NewDomainError("PDF_UNAVAILABLE", "PDF export is not configured")
	ErrNoProductIDs       = shared.NewDomainError(labeling.CodeEmptyBatch, "at least one product ID is required")
	ErrProductNotFound    = shared.NewDomainError("NOT_FOUND", "product not found")
)

// BatchRenderer renders product labels in bulk and arranges them on a sheet
type BatchRenderer interface {
	Policy() labeling.BatchPolicy
	RenderBatch(ctx context.Context, inputs []labeling.ProductLabelInput) ([]labeling.BatchItemResult, error)
	BuildPrintSheet(labels []*labeling.RenderedLabel) (*labeling.PrintSheet, error)
}

// SheetPDFExporter prints a sheet to PDF
type SheetPDFExporter interface {
	ExportPDF(ctx context.Context, sheet *labeling.PrintSheet) (*printing.RenderResult, error)
}

// ServiceConfig holds the label settings the service needs at runtime
type ServiceConfig struct {
	BaseURL string
	Variant string
}

// LabelService coordinates rendering, artifact storage and label history
type LabelService struct {
	products  catalog.ProductReader
	history   labeling.LabelRecordRepository
	store     labeling.ArtifactStore
	renderer  labeling.Renderer
	generator BatchRenderer // bounded batches for generate-multiple
	sheets    BatchRenderer // grid layout for print sheets
	config    ServiceConfig
	logger    *zap.Logger

	remote   catalog.RemoteCatalog
	exporter SheetPDFExporter
	metrics  *telemetry.LabelMetrics
	now      func() time.Time

	keyMu     sync.Mutex
	lastKeyAt time.Time
}

// NewLabelService creates a new LabelService
func NewLabelService(
	products catalog.ProductReader,
	history labeling.LabelRecordRepository,
	store labeling.ArtifactStore,
	renderer labeling.Renderer,
	generator BatchRenderer,
	sheets BatchRenderer,
	cfg ServiceConfig,
	logger *zap.Logger,
) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelService{
		products:  products,
		history:   history,
		store:     store,
		renderer:  renderer,
		generator: generator,
		sheets:    sheets,
		config:    cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// SetRemoteCatalog enables storefront lookups
func (s *LabelService) SetRemoteCatalog(remote catalog.RemoteCatalog) {
	s.remote = remote
}

// SetPDFExporter enables PDF print sheets
func (s *LabelService) SetPDFExporter(exporter SheetPDFExporter) {
	s.exporter = exporter
}

// SetLabelMetrics sets the label metrics collector
func (s *LabelService) SetLabelMetrics(m *telemetry.LabelMetrics) {
	s.metrics = m
}

// PreviewLabel renders a label and returns it without storing anything
func (s *LabelService) PreviewLabel(ctx context.Context, req PreviewLabelRequest) (*labeling.RenderedLabel, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "preview")
	defer span.End()

	in, err := s.previewInput(ctx, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrSKU, in.SKU)

	label, err := s.render(ctx, in)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return label, nil
}

func (s *LabelService) previewInput(ctx context.Context, req PreviewLabelRequest) (labeling.ProductLabelInput, error) {
	if req.ProductID != nil {
		product, err := s.findProduct(ctx, *req.ProductID)
		if err != nil {
			return labeling.ProductLabelInput{}, err
		}
		return product.LabelInput(s.config.BaseURL)
	}

	in := labeling.ProductLabelInput{
		SKU:            strings.TrimSpace(req.SKU),
		Name:           strings.TrimSpace(req.Name),
		Brand:          req.Brand,
		DestinationURL: strings.TrimSpace(req.DestinationURL),
	}
	if err := in.Validate(); err != nil {
		return labeling.ProductLabelInput{}, err
	}
	if in.DestinationURL == "" {
		dest, err := labeling.DestinationURL(s.config.BaseURL, req.URLKey)
		if err != nil {
			return labeling.ProductLabelInput{}, err
		}
		in.DestinationURL = dest
	}
	if err := in.ValidateDestination(); err != nil {
		return labeling.ProductLabelInput{}, err
	}
	return in, nil
}

// GenerateLabel renders a product's label, uploads it and records it in the history
func (s *LabelService) GenerateLabel(ctx context.Context, productID uuid.UUID) (*LabelResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "generate",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID.String()))
	defer span.End()

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	in, err := product.LabelInput(s.config.BaseURL)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	label, err := s.render(ctx, in)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	record, err := s.persist(ctx, product, in, label)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Label generated",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("label_url", record.LabelURL),
	)
	return &LabelResponse{
		ID:        record.ID,
		ProductID: product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		URL:       record.URL,
		LabelURL:  record.LabelURL,
		CreatedAt: record.CreatedAt,
	}, nil
}

// GenerateLabels renders and stores labels for a bounded batch of products.
// Every requested product gets exactly one item, in request order; a product
// that cannot be labelled never stops the others.
func (s *LabelService) GenerateLabels(ctx context.Context, productIDs []uuid.UUID) (*BatchGenerateResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "generate_multiple",
		telemetry.WithAttribute(telemetry.SpanAttrBatchSize, len(productIDs)))
	defer span.End()

	policy := s.generator.Policy()
	if err := policy.Check(len(productIDs)); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	plan, err := s.planBatch(ctx, productIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if len(plan.inputs) > 0 {
		results, err := s.generator.RenderBatch(ctx, plan.inputs)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		for i, res := range results {
			slot := plan.slots[i]
			item := &plan.items[slot]
			if !res.Success {
				item.Error = res.ErrorMessage()
				continue
			}
			record, err := s.persist(ctx, plan.products[slot], plan.inputs[i], res.Label)
			if err != nil {
				item.Error = err.Error()
				continue
			}
			item.Success = true
			item.LabelURL = record.LabelURL
			item.HistoryID = &record.ID
		}
	}

	resp := &BatchGenerateResponse{Items: plan.items}
	for _, item := range resp.Items {
		if item.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	resp.Message = batchMessage(resp.Succeeded, resp.Failed, resp.Items)

	s.metrics.RecordBatch(ctx, policy.Name(), len(productIDs), resp.Failed)
	telemetry.SetAttributes(span, telemetry.SpanAttrFailed, resp.Failed)
	s.logger.Info("Label batch generated",
		zap.Int("requested", len(productIDs)),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

// PrintSheet renders labels for the products and lays them out on one
// printable document. Products that cannot be rendered are reported in
// Failed and left off the sheet.
func (s *LabelService) PrintSheet(ctx context.Context, req PrintSheetRequest) (*SheetDocument, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = SheetFormatHTML
	}

	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "print_sheet",
		telemetry.WithAttribute(telemetry.SpanAttrBatchSize, len(req.ProductIDs)),
		telemetry.WithAttribute(telemetry.SpanAttrFormat, format))
	defer span.End()

	if format != SheetFormatHTML && format != SheetFormatPDF {
		telemetry.RecordError(span, ErrInvalidSheetFormat)
		return nil, ErrInvalidSheetFormat
	}
	if format == SheetFormatPDF && s.exporter == nil {
		return nil, ErrPDFUnavailable
	}

	policy := s.sheets.Policy()
	if err := policy.Check(len(req.ProductIDs)); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	plan, err := s.planBatch(ctx, req.ProductIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var labels []*labeling.RenderedLabel
	if len(plan.inputs) > 0 {
		results, err := s.sheets.RenderBatch(ctx, plan.inputs)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		for i, res := range results {
			item := &plan.items[plan.slots[i]]
			if res.Success {
				item.Success = true
				continue
			}
			item.Error = res.ErrorMessage()
		}
		labels = labeling.SucceededLabels(results)
	}

	failed := make([]BatchItemResponse, 0)
	for _, item := range plan.items {
		if !item.Success {
			failed = append(failed, item)
		}
	}
	s.metrics.RecordBatch(ctx, policy.Name(), len(req.ProductIDs), len(failed))

	if len(labels) == 0 {
		err := shared.NewDomainError(labeling.CodeRenderFailed,
			"no label could be rendered: "+batchMessage(0, len(failed), plan.items))
		telemetry.RecordError(span, err)
		return nil, err
	}

	sheet, err := s.sheets.BuildPrintSheet(labels)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	doc := &SheetDocument{
		Labels: len(labels),
		Grid:   sheet.Grid,
		Failed: failed,
	}
	switch format {
	case SheetFormatPDF:
		result, err := s.exporter.ExportPDF(ctx, sheet)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to export print sheet: %w", err)
		}
		doc.ContentType = "application/pdf"
		doc.Filename = fmt.Sprintf("etiquetas-qr-%d.pdf", s.now().Unix())
		doc.Body = result.PDFData
	default:
		body, err := infralabeling.RenderSheetHTML(sheet)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to render print sheet: %w", err)
		}
		doc.ContentType = "text/html; charset=utf-8"
		doc.Filename = fmt.Sprintf("etiquetas-qr-%d.html", s.now().Unix())
		doc.Body = body
	}

	s.metrics.RecordSheet(ctx, format, len(labels))
	s.logger.Info("Print sheet built",
		zap.String("format", format),
		zap.Int("labels", len(labels)),
		zap.Int("failed", len(failed)),
		zap.Int("columns", sheet.Grid.Columns),
	)
	return doc, nil
}

// ListHistory returns a page of the label history, newest first
func (s *LabelService) ListHistory(ctx context.Context, req ListHistoryRequest) (*HistoryListResponse, error) {
	filter := labeling.HistoryFilter{
		Page:   req.Page,
		Limit:  req.Limit,
		Search: req.Search,
	}
	if req.ProductID != "" {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "product_id must be a UUID")
		}
		filter.ProductID = &id
	}
	filter = filter.Normalize()

	records, total, err := s.history.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryResponse, len(records))
	for i := range records {
		items[i] = toHistoryResponse(&records[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit)
	return &HistoryListResponse{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetHistory returns one label history entry
func (s *LabelService) GetHistory(ctx context.Context, id uuid.UUID) (*HistoryResponse, error) {
	record, err := s.history.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toHistoryResponse(record)
	return &resp, nil
}

// DeleteLabels removes the stored labels of the given products. Artifacts are
// deleted first on a best-effort basis; history rows are always removed.
func (s *LabelService) DeleteLabels(ctx context.Context, productIDs []uuid.UUID) (*DeleteLabelsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "delete",
		telemetry.WithAttribute(telemetry.SpanAttrBatchSize, len(productIDs)))
	defer span.End()

	if len(productIDs) == 0 {
		return nil, ErrNoProductIDs
	}

	records, err := s.history.FindByProductIDs(ctx, productIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(records) == 0 {
		return &DeleteLabelsResponse{
			ProductIDs: productIDs,
			Message:    "No hay QRs para eliminar",
		}, nil
	}

	fromStorage := 0
	for _, r := range records {
		if r.LabelURL == "" {
			continue
		}
		if err := s.store.Delete(ctx, r.LabelURL); err != nil {
			s.metrics.RecordStorageFailure(ctx, "delete")
			s.logger.Warn("Failed to delete label artifact",
				zap.String("label_url", r.LabelURL),
				zap.String("product_id", r.ProductID.String()),
				zap.Error(err),
			)
			continue
		}
		fromStorage++
	}

	deleted, err := s.history.DeleteByProductIDs(ctx, productIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Labels deleted",
		zap.Int64("deleted", deleted),
		zap.Int("deleted_from_storage", fromStorage),
	)
	return &DeleteLabelsResponse{
		Deleted:            deleted,
		DeletedFromStorage: fromStorage,
		ProductIDs:         productIDs,
		Message:            fmt.Sprintf("%d QR(s) eliminados exitosamente", deleted),
	}, nil
}

// LookupRemoteProduct finds a product on the storefront by SKU
func (s *LabelService) LookupRemoteProduct(ctx context.Context, sku string) (*RemoteProductResponse, error) {
	if s.remote == nil {
		return nil, catalog.ErrRemoteCatalogDisabled
	}

	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "lookup_remote",
		telemetry.WithAttribute(telemetry.SpanAttrSKU, sku))
	defer span.End()

	product, err := s.remote.FindBySKU(ctx, sku)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := toRemoteProductResponse(product, s.config.BaseURL)
	return &resp, nil
}

func (s *LabelService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *LabelService) render(ctx context.Context, in labeling.ProductLabelInput) (*labeling.RenderedLabel, error) {
	ctx, _ = logger.WithSKU(ctx, s.logger, in.SKU)
	start := time.Now()
	label, err := s.renderer.Render(ctx, in)
	s.metrics.RecordRender(ctx, s.config.Variant, time.Since(start), err)
	return label, err
}

// persist uploads the label and records it. The artifact is removed again when
// the history row cannot be written.
func (s *LabelService) persist(ctx context.Context, product *catalog.Product, in labeling.ProductLabelInput, label *labeling.RenderedLabel) (*labeling.LabelRecord, error) {
	ctx, log := logger.WithSKU(ctx, s.logger, product.SKU)

	key := labeling.ArtifactKey(product.SKU, s.artifactTime())
	labelURL, err := s.store.Save(ctx, key, label.PNG)
	if err != nil {
		s.metrics.RecordStorageFailure(ctx, "save")
		log.Warn("Failed to upload label",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, shared.NewDomainError(labeling.CodeStorageFailed, "failed to upload label: "+err.Error())
	}

	record, err := labeling.NewLabelRecord(product.ID, in.DestinationURL, labelURL)
	if err != nil {
		return nil, err
	}
	if err := s.history.Create(ctx, record); err != nil {
		if delErr := s.store.Delete(ctx, labelURL); delErr != nil {
			log.Warn("Failed to remove orphaned label",
				zap.String("label_url", labelURL),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to record label history: %w", err)
	}
	return record, nil
}

// artifactTime returns the timestamp for the next artifact key. It advances
// by at least a millisecond per call so that two labels of the same SKU,
// e.g. a product listed twice in one batch, never share a key.
func (s *LabelService) artifactTime() time.Time {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	at := time.UnixMilli(s.now().UnixMilli())
	if !at.After(s.lastKeyAt) {
		at = s.lastKeyAt.Add(time.Millisecond)
	}
	s.lastKeyAt = at
	return at
}

// batchPlan maps the requested products onto the inputs handed to the renderer
type batchPlan struct {
	items    []BatchItemResponse
	products []*catalog.Product // by item slot; nil when missing
	inputs   []labeling.ProductLabelInput
	slots    []int // item slot of each input
}

func (s *LabelService) planBatch(ctx context.Context, productIDs []uuid.UUID) (*batchPlan, error) {
	found, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	plan := &batchPlan{
		items:    make([]BatchItemResponse, len(productIDs)),
		products: make([]*catalog.Product, len(productIDs)),
	}
	for slot, id := range productIDs {
		item := &plan.items[slot]
		item.ProductID = id

		product, ok := byID[id]
		if !ok {
			item.Error = ErrProductNotFound.Message
			continue
		}
		item.SKU = product.SKU
		item.Name = product.Name
		plan.products[slot] = product

		in, err := product.LabelInput(s.config.BaseURL)
		if err != nil {
			item.Error = err.Error()
			continue
		}
		plan.inputs = append(plan.inputs, in)
		plan.slots = append(plan.slots, slot)
	}
	return plan, nil
}

// batchMessage summarises a batch, e.g. "3 succeeded, 1 failed: ABC-1: missing URL key"
func batchMessage(succeeded, failed int, items []BatchItemResponse) string {
	msg := fmt.Sprintf("%d succeeded, %d failed", succeeded, failed)
	if failed == 0 {
		return msg
	}
	reasons := make([]string, 0, failed)
	for _, item := range items {
		if item.Success {
			continue
		}
		who := item.SKU
		if who == "" {
			who = item.ProductID.String()
		}
		reasons = append(reasons, who+": "+item.Error)
	}
	return msg + ": " + strings.Join(reasons, "; ")
}
