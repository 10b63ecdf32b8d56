package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Label error codes
const (
	ErrCodeLabelInvalid       = "ERR_LABEL_INVALID"
	ErrCodeLabelURLInvalid    = "ERR_LABEL_URL_INVALID"
	ErrCodeLabelMissingURLKey = "ERR_LABEL_MISSING_URL_KEY"
	ErrCodeLabelSizeInvalid   = "ERR_LABEL_SIZE_INVALID"
	ErrCodeBatchEmpty         = "ERR_BATCH_EMPTY"
	ErrCodeBatchTooLarge      = "ERR_BATCH_TOO_LARGE"
	ErrCodeSheetFormat        = "ERR_SHEET_FORMAT"
	ErrCodeRenderFailed       = "ERR_RENDER_FAILED"
	ErrCodeStorageFailed      = "ERR_STORAGE_FAILED"
	ErrCodePDFUnavailable     = "ERR_PDF_UNAVAILABLE"
)

// Remote catalog error codes
const (
	ErrCodeRemoteDisabled    = "ERR_REMOTE_DISABLED"
	ErrCodeRemoteUnavailable = "ERR_REMOTE_UNAVAILABLE"
	ErrCodeRemoteAuthFailed  = "ERR_REMOTE_AUTH_FAILED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	ErrCodeTooLarge    = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeForbidden:     http.StatusForbidden,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Bad label input is the caller's fault
	ErrCodeLabelInvalid:       http.StatusBadRequest,
	ErrCodeLabelURLInvalid:    http.StatusBadRequest,
	ErrCodeLabelMissingURLKey: http.StatusBadRequest,
	ErrCodeLabelSizeInvalid:   http.StatusBadRequest,
	ErrCodeBatchEmpty:         http.StatusBadRequest,
	ErrCodeBatchTooLarge:      http.StatusBadRequest,
	ErrCodeSheetFormat:        http.StatusBadRequest,
	ErrCodeRenderFailed:       http.StatusUnprocessableEntity,
	ErrCodeStorageFailed:      http.StatusBadGateway,
	ErrCodePDFUnavailable:     http.StatusServiceUnavailable,

	ErrCodeRemoteDisabled:    http.StatusServiceUnavailable,
	ErrCodeRemoteUnavailable: http.StatusBadGateway,
	ErrCodeRemoteAuthFailed:  http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeTooLarge:    http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the API codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"INVALID_STATE":  ErrCodeInvalidState,
	"INTERNAL_ERROR": ErrCodeInternal,

	"INVALID_SKU":       ErrCodeInvalidInput,
	"INVALID_NAME":      ErrCodeInvalidInput,
	"INVALID_PRODUCT":   ErrCodeInvalidInput,
	"INVALID_LABEL_URL": ErrCodeInvalidInput,
	"INVALID_MARGINS":   ErrCodeLabelSizeInvalid,

	"INVALID_LABEL_INPUT":     ErrCodeLabelInvalid,
	"INVALID_DESTINATION_URL": ErrCodeLabelURLInvalid,
	"MISSING_URL_KEY":         ErrCodeLabelMissingURLKey,
	"INVALID_LABEL_SIZE":      ErrCodeLabelSizeInvalid,
	"EMPTY_BATCH":             ErrCodeBatchEmpty,
	"BATCH_TOO_LARGE":         ErrCodeBatchTooLarge,
	"INVALID_SHEET_FORMAT":    ErrCodeSheetFormat,
	"RENDER_FAILED":           ErrCodeRenderFailed,
	"STORAGE_FAILED":          ErrCodeStorageFailed,
	"PDF_UNAVAILABLE":         ErrCodePDFUnavailable,

	"REMOTE_CATALOG_DISABLED":    ErrCodeRemoteDisabled,
	"REMOTE_CATALOG_UNAVAILABLE": ErrCodeRemoteUnavailable,
	"REMOTE_CATALOG_AUTH_FAILED": ErrCodeRemoteAuthFailed,
}

// NormalizeErrorCode converts a domain error code to the API format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
