package labeling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/showroom/backend/internal/domain/shared"
)

// LabelRecord is a stored label: which product it was for, the URL encoded in
// its QR code and where the PNG was uploaded.
type LabelRecord struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	URL       string
	LabelURL  string
	CreatedAt time.Time

	// Product summary, populated by list queries
	ProductSKU   string
	ProductName  string
	ProductBrand *string
}

// NewLabelRecord creates a history entry for a freshly stored label
func NewLabelRecord(productID uuid.UUID, destinationURL, labelURL string) (*LabelRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "product ID is required")
	}
	if strings.TrimSpace(labelURL) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL_URL", "label URL is required")
	}
	return &LabelRecord{
		ID:        uuid.New(),
		ProductID: productID,
		URL:       destinationURL,
		LabelURL:  labelURL,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Pagination limits for history listings
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// HistoryFilter selects label history entries
type HistoryFilter struct {
	Page      int
	Limit     int
	Search    string // case-insensitive substring of the product SKU
	ProductID *uuid.UUID
}

// Normalize clamps the paging values to their allowed range
func (f HistoryFilter) Normalize() HistoryFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		f.Limit = MaxHistoryLimit
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// Offset returns the number of rows to skip
func (f HistoryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// LabelRecordRepository persists label history
type LabelRecordRepository interface {
	Create(ctx context.Context, record *LabelRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*LabelRecord, error)
	List(ctx context.Context, filter HistoryFilter) ([]LabelRecord, int64, error)
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]LabelRecord, error)
	DeleteByProductIDs(ctx context.Context, productIDs []uuid.UUID) (int64, error)
}
