package labeling

import (
	"time"

	"github.com/google/uuid"

	"github.com/showroom/backend/internal/domain/catalog"
	"github.com/showroom/backend/internal/domain/labeling"
)

// =============================================================================
// Request DTOs
// =============================================================================

// PreviewLabelRequest renders a label without storing it. Either ProductID or
// the explicit fields must be given; when DestinationURL is empty it is
// derived from URLKey.
type PreviewLabelRequest struct {
	ProductID      *uuid.UUID `json:"product_id"`
	SKU            string     `json:"sku" binding:"omitempty,max=100"`
	Name           string     `json:"name" binding:"omitempty,max=255"`
	Brand          *string    `json:"brand"`
	URLKey         string     `json:"url_key"`
	DestinationURL string     `json:"destination_url"`
}

// GenerateLabelRequest generates and stores the label of one product
type GenerateLabelRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// GenerateLabelsRequest generates labels for several products at once
type GenerateLabelsRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
}

// Sheet formats
const (
	SheetFormatHTML = "html"
	SheetFormatPDF  = "pdf"
)

// PrintSheetRequest lays out product labels on a printable page
type PrintSheetRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
	Format     string      `json:"format" example:"html"`
}

// ListHistoryRequest filters the label history
type ListHistoryRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
}

// DeleteLabelsRequest deletes every stored label of the given products
type DeleteLabelsRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
}

// =============================================================================
// Response DTOs
// =============================================================================

// LabelResponse is a stored label
type LabelResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	LabelURL  string    `json:"label_url"`
	CreatedAt time.Time `json:"created_at"`
}

// BatchItemResponse is the outcome of one product in a batch
type BatchItemResponse struct {
	Success   bool       `json:"success"`
	ProductID uuid.UUID  `json:"product_id"`
	SKU       string     `json:"sku,omitempty"`
	Name      string     `json:"name,omitempty"`
	LabelURL  string     `json:"label_url,omitempty"`
	HistoryID *uuid.UUID `json:"history_id,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// BatchGenerateResponse reports a batch, one item per requested product in request order
type BatchGenerateResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Message   string              `json:"message"`
}

// SheetDocument is a printable sheet ready to send to the browser
type SheetDocument struct {
	ContentType string
	Filename    string
	Body        []byte
	Labels      int
	Grid        labeling.Grid
	Failed      []BatchItemResponse
}

// HistoryResponse is one label history entry
type HistoryResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	URL          string    `json:"url"`
	LabelURL     string    `json:"label_url"`
	CreatedAt    time.Time `json:"created_at"`
	ProductSKU   string    `json:"product_sku,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductBrand *string   `json:"product_brand,omitempty"`
}

// HistoryListResponse is a page of label history
type HistoryListResponse struct {
	Items      []HistoryResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// DeleteLabelsResponse reports a label deletion
type DeleteLabelsResponse struct {
	Deleted            int64       `json:"deleted"`
	DeletedFromStorage int         `json:"deleted_from_storage"`
	ProductIDs         []uuid.UUID `json:"product_ids"`
	Message            string      `json:"message"`
}

// RemoteProductResponse is a storefront product with the URL its label would encode
type RemoteProductResponse struct {
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Brand          *string `json:"brand"`
	URLKey         *string `json:"url_key"`
	Enabled        bool    `json:"enabled"`
	DestinationURL string  `json:"destination_url,omitempty"`
}

func toHistoryResponse(r *labeling.LabelRecord) HistoryResponse {
	return HistoryResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		URL:          r.URL,
		LabelURL:     r.LabelURL,
		CreatedAt:    r.CreatedAt,
		ProductSKU:   r.ProductSKU,
		ProductName:  r.ProductName,
		ProductBrand: r.ProductBrand,
	}
}

func toRemoteProductResponse(p *catalog.RemoteProduct, baseURL string) RemoteProductResponse {
	resp := RemoteProductResponse{
		SKU:     p.SKU,
		Name:    p.Name,
		Brand:   p.Brand,
		URLKey:  p.URLKey,
		Enabled: p.Enabled,
	}
	if p.URLKey != nil {
		if dest, err := labeling.DestinationURL(baseURL, *p.URLKey); err == nil {
			resp.DestinationURL = dest
		}
	}
	return resp
}
