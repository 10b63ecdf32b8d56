package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/showroom/backend/internal/domain/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.Equal(t, defaultScale, r.config.Scale)
	assert.True(t, r.config.Headless)
	assert.True(t, r.config.DisableGPU)
	assert.NotNil(t, r.logger)
}

func TestBuildPrintParams_LabelSheet(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{Scale: 1.0}}

	params := r.buildPrintParams(&RenderRequest{
		HTML:              "<html>test</html>",
		Page:              printing.LabelSheetPage(),
		PreferCSSPageSize: true,
	})

	assert.InDelta(t, mmToInches(210), params.paperWidth, 0.01)
	assert.InDelta(t, mmToInches(297), params.paperHeight, 0.01)
	assert.InDelta(t, mmToInches(8), params.marginTop, 0.001)
	assert.InDelta(t, mmToInches(8), params.marginLeft, 0.001)
	assert.False(t, params.landscape)
	assert.True(t, params.printBackground)
	assert.True(t, params.preferCSSPageSize)
	assert.Equal(t, 1.0, params.scale)
}

func TestBuildPrintParams_Landscape(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{Scale: 1.0}}

	params := r.buildPrintParams(&RenderRequest{
		HTML: "<html>test</html>",
		Page: printing.PageSetup{
			PaperSize:   printing.PaperSizeA5,
			Orientation: printing.OrientationLandscape,
		},
	})

	assert.True(t, params.landscape)
	assert.InDelta(t, mmToInches(148), params.paperWidth, 0.01)
	assert.InDelta(t, mmToInches(210), params.paperHeight, 0.01)
	assert.Zero(t, params.marginTop)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name string
		req  *RenderRequest
		code string
	}{
		{name: "nil request", req: nil, code: ErrCodeInvalidHTML},
		{name: "blank html", req: &RenderRequest{HTML: " \n\t", Page: printing.LabelSheetPage()}, code: ErrCodeInvalidHTML},
		{name: "bad paper", req: &RenderRequest{HTML: "<p>x</p>", Page: printing.PageSetup{PaperSize: "B9"}}, code: ErrCodeInvalidPaperSize},
		{name: "valid", req: &RenderRequest{HTML: "<p>x</p>", Page: printing.LabelSheetPage()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			var renderErr *RenderError
			require.True(t, errors.As(err, &renderErr))
			assert.Equal(t, tt.code, renderErr.Code)
		})
	}
}

func TestChromedpRenderer_RenderRejectsInvalidRequest(t *testing.T) {
	r, err := NewChromedpRenderer(&ChromedpConfig{DefaultTimeout: time.Second})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Render(context.Background(), &RenderRequest{Page: printing.LabelSheetPage()})
	require.Error(t, err)
}

func TestBuildCompleteHTML(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, buildCompleteHTML(&RenderRequest{HTML: full}))

	wrapped := buildCompleteHTML(&RenderRequest{HTML: "<p>x</p>", Title: "A & B"})
	assert.Contains(t, wrapped, "<title>A &amp; B</title>")
	assert.Contains(t, wrapped, "<body><p>x</p></body>")
}

func TestEstimatePageCount(t *testing.T) {
	assert.Equal(t, 1, estimatePageCount([]byte("%PDF-1.4")))
	pdf := []byte("<< /Type /Pages /Count 2 >> << /Type /Page >> << /Type /Page >>")
	assert.Equal(t, 2, estimatePageCount(pdf))
}

func TestRenderError(t *testing.T) {
	cause := errors.New("boom")
	err := NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", cause)

	assert.Equal(t, "chromedp execution failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generated PDF is empty", NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil).Error())
}
