package labeling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/printing"
)

func sheetLabels(n int) []*labeling.RenderedLabel {
	labels := make([]*labeling.RenderedLabel, n)
	for i := range labels {
		labels[i] = &labeling.RenderedLabel{PNG: []byte{0x89, 'P', 'N', 'G', byte(i)}, Width: 1193, Height: 1489, SKU: "sku"}
	}
	return labels
}

func TestRenderSheetHTML_Grid(t *testing.T) {
	tests := []struct {
		name    string
		policy  labeling.BatchPolicy
		count   int
		columns string
		rows    string
	}{
		{"bounded four", labeling.BoundedBatch{Max: 4}, 4, "repeat(2, 1fr)", "repeat(2, 1fr)"},
		{"grid four", labeling.UnboundedGridBatch{}, 4, "repeat(2, 1fr)", "repeat(2, 1fr)"},
		{"grid seven", labeling.UnboundedGridBatch{}, 7, "repeat(3, 1fr)", "repeat(3, 1fr)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := labeling.NewPrintSheet(sheetLabels(tt.count), tt.policy, printing.LabelSheetPage())
			require.NoError(t, err)

			out, err := RenderSheetHTML(sheet)
			require.NoError(t, err)
			html := string(out)

			assert.Contains(t, html, "grid-template-columns: "+tt.columns)
			assert.Contains(t, html, "grid-template-rows: "+tt.rows)
			assert.Equal(t, tt.count, strings.Count(html, "<img "))
			assert.Equal(t, tt.count, strings.Count(html, `src="data:image/png;base64,`))
			assert.Contains(t, html, "page-break-inside: avoid")
			assert.Contains(t, html, "break-inside: avoid")
			assert.Contains(t, html, "size: A4 portrait")
			assert.Contains(t, html, "margin: 0.8cm 0.8cm 0.8cm 0.8cm")
			assert.NotContains(t, html, "container single")
		})
	}
}

func TestRenderSheetHTML_SingleLabelIsCentered(t *testing.T) {
	sheet, err := labeling.NewPrintSheet(sheetLabels(1), labeling.UnboundedGridBatch{}, printing.LabelSheetPage())
	require.NoError(t, err)

	out, err := RenderSheetHTML(sheet)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `class="container single"`)
	assert.Contains(t, html, "repeat(1, 1fr)")
	assert.Contains(t, html, "min-height: 27.1cm")
	assert.Equal(t, 1, strings.Count(html, "<img "))
}

func TestRenderSheetHTML_Empty(t *testing.T) {
	_, err := RenderSheetHTML(nil)
	assert.ErrorIs(t, err, labeling.ErrEmptyBatch)
}
