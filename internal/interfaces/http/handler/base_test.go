package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/shared"
	"github.com/showroom/backend/internal/infrastructure/logger"
	"github.com/showroom/backend/internal/interfaces/http/dto"
	"github.com/showroom/backend/internal/interfaces/http/middleware"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	var captured *gin.Context
	h := &BaseHandler{}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/err", func(c *gin.Context) {
		captured = c
		h.HandleError(c, err)
	})
	req := httptest.NewRequest(http.MethodGet, "/err", nil)
	req.Header.Set(middleware.RequestIDKey, "req-err")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, captured
}

func TestBaseHandler_HandleError(t *testing.T) {
	storageErr := shared.NewDomainError(labeling.CodeStorageFailed, "failed to upload label")
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound, "Resource not found"},
		{"batch too large", labeling.ErrBatchTooLarge, http.StatusBadRequest, dto.ErrCodeBatchTooLarge, labeling.ErrBatchTooLarge.Message},
		{"wrapped domain error", fmt.Errorf("SKU-1: %w", storageErr), http.StatusBadGateway, dto.ErrCodeStorageFailed, "SKU-1: failed to upload label"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := serveError(t, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, "req-err", resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleError_AttachesCause(t *testing.T) {
	_, c := serveError(t, fmt.Errorf("db down"))
	require.NotNil(t, c)
	require.Len(t, c.Errors, 1)
	assert.Equal(t, "db down", c.Errors[0].Error())
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	w, _ := serveError(t, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_HandleError_LogsOnRequestLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	h := &BaseHandler{}
	r := gin.New()
	r.Use(middleware.RequestID(), logger.GinMiddleware(zap.New(core)))
	r.GET("/err", func(c *gin.Context) { h.HandleError(c, fmt.Errorf("bucket unreachable")) })
	r.GET("/missing", func(c *gin.Context) { h.HandleError(c, shared.ErrNotFound) })

	for _, path := range []string{"/err", "/missing"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.RequestIDKey, "req-log")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	logs := recorded.FilterMessage("Unhandled request error").All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "req-log", fields["request_id"])
	assert.Equal(t, "/err", fields["path"])
	assert.Equal(t, "bucket unreachable", fields["error"])
}
