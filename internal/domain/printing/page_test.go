package printing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaperSize_IsValid(t *testing.T) {
	tests := []struct {
		name      string
		paperSize PaperSize
		expected  bool
	}{
		{"valid A4", PaperSizeA4, true},
		{"valid A5", PaperSizeA5, true},
		{"valid LETTER", PaperSizeLetter, true},
		{"invalid empty", PaperSize(""), false},
		{"invalid unknown", PaperSize("RECEIPT_58MM"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.paperSize.IsValid())
		})
	}
}

func TestPaperSize_Dimensions(t *testing.T) {
	tests := []struct {
		paperSize      PaperSize
		expectedWidth  int
		expectedHeight int
	}{
		{PaperSizeA4, 210, 297},
		{PaperSizeA5, 148, 210},
		{PaperSizeLetter, 216, 279},
		{PaperSize("unknown"), 210, 297},
	}

	for _, tt := range tests {
		t.Run(tt.paperSize.String(), func(t *testing.T) {
			w, h := tt.paperSize.Dimensions()
			assert.Equal(t, tt.expectedWidth, w)
			assert.Equal(t, tt.expectedHeight, h)
		})
	}
}

func TestLabelSheetPage(t *testing.T) {
	page := LabelSheetPage()
	assert.Equal(t, PaperSizeA4, page.PaperSize)
	assert.Equal(t, OrientationPortrait, page.Orientation)
	assert.Equal(t, UniformMargins(8), page.Margins)
	assert.Equal(t, "A4", page.PaperSize.CSSName())
}
