package labeling

import "github.com/showroom/backend/internal/domain/shared"

// Label error codes
const (
	CodeInvalidLabelInput     = "INVALID_LABEL_INPUT"
	CodeInvalidDestinationURL = "INVALID_DESTINATION_URL"
	CodeMissingURLKey         = "MISSING_URL_KEY"
	CodeInvalidLabelSize      = "INVALID_LABEL_SIZE"
	CodeBatchTooLarge         = "BATCH_TOO_LARGE"
	CodeEmptyBatch            = "EMPTY_BATCH"
	CodeRenderFailed          = "RENDER_FAILED"
	CodeStorageFailed         = "STORAGE_FAILED"
)

var (
	ErrInvalidLabelInput     = shared.NewDomainError(CodeInvalidLabelInput, "SKU and name are required")
	ErrInvalidDestinationURL = shared.NewDomainError(CodeInvalidDestinationURL, "destination URL is not a valid absolute URL")
	ErrMissingURLKey         = shared.NewDomainError(CodeMissingURLKey, "missing URL key")
	ErrInvalidLabelSize      = shared.NewDomainError(CodeInvalidLabelSize, "label size is too small to hold a QR code")
	ErrEmptyBatch            = shared.NewDomainError(CodeEmptyBatch, "at least one label is required")
	ErrBatchTooLarge         = shared.NewDomainError(CodeBatchTooLarge, "too many labels for one batch")
	ErrRenderFailed          = shared.NewDomainError(CodeRenderFailed, "label rendering failed")
)
