package labeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGeometry_DefaultLabel(t *testing.T) {
	g := ComputeGeometry(DefaultLabelSize())

	assert.Equal(t, 1169, g.ContentWidth)
	assert.Equal(t, 1465, g.ContentHeight)
	assert.Equal(t, 12, g.CutMargin)
	assert.Equal(t, 6, g.Padding)
	assert.Equal(t, 189, g.NameBandHeight)
	assert.Equal(t, 59, g.SKUBandHeight)
	assert.Equal(t, 983, g.QRSize)
	assert.Equal(t, 105, g.QRX)
	assert.Equal(t, 318, g.QRY)
	assert.Equal(t, 1193, g.TotalWidth())
	assert.Equal(t, 1489, g.TotalHeight())
	assert.Equal(t, 1051, g.NameMaxWidth())

	assert.Equal(t, 30, g.SKUBottomInset)
	_, skuY := g.SKUCenter()
	assert.Equal(t, float64(12+1465-6-30), skuY)
}

func TestComputeGeometry_ScalesWithDPI(t *testing.T) {
	g := ComputeGeometry(LabelSize{WidthCM: 9.9, HeightCM: 12.4, DPI: 72})
	assert.Equal(t, 7, g.SKUBottomInset)
	assert.InDelta(t, 11.52, g.Size.ScalePx(48), 1e-9)
	assert.InDelta(t, 96.0, ComputeGeometry(LabelSize{WidthCM: 9.9, HeightCM: 12.4, DPI: 600}).Size.ScalePx(48), 1e-9)
}

func TestComputeGeometry_Invariants(t *testing.T) {
	sizes := []LabelSize{
		DefaultLabelSize(),
		{WidthCM: 8, HeightCM: 8, DPI: 300},
		{WidthCM: 9, HeightCM: 11, DPI: 300},
		{WidthCM: 5, HeightCM: 20, DPI: 300},
		{WidthCM: 20, HeightCM: 5, DPI: 600},
		{WidthCM: 9.9, HeightCM: 12.4, DPI: 72},
		{WidthCM: 3, HeightCM: 3.5, DPI: 150},
	}

	for _, size := range sizes {
		t.Run(size.String(), func(t *testing.T) {
			g := ComputeGeometry(size)

			require.Positive(t, g.QRSize)
			assert.Equal(t, g.QRRect().Dx(), g.QRRect().Dy(), "QR must be square")
			assert.LessOrEqual(t, g.QRSize+g.NameBandHeight+g.SKUBandHeight+2*g.Padding, g.ContentHeight)

			content := g.ContentRect()
			for name, r := range map[string]interface{ Empty() bool }{
				"name": g.NameBand(),
				"qr":   g.QRRect(),
				"sku":  g.SKUBand(),
			} {
				assert.False(t, r.Empty(), "%s band must not be empty", name)
			}
			assert.True(t, g.NameBand().In(content))
			assert.True(t, g.QRRect().In(content))
			assert.True(t, g.SKUBand().In(content))
			assert.True(t, content.In(g.TotalRect()))

			assert.False(t, g.NameBand().Overlaps(g.QRRect()), "name band overlaps QR")
			assert.False(t, g.QRRect().Overlaps(g.SKUBand()), "QR overlaps SKU band")
			assert.False(t, g.NameBand().Overlaps(g.SKUBand()), "name band overlaps SKU band")

			assert.True(t, g.NameArea().In(content))
			assert.True(t, g.SKUArea().In(content))
			assert.False(t, g.NameArea().Overlaps(g.QRRect()), "name area overlaps QR")
			assert.False(t, g.SKUArea().Overlaps(g.QRRect()), "SKU area overlaps QR")
			_, skuY := g.SKUCenter()
			assert.Less(t, int(skuY), g.SKUArea().Max.Y)
			assert.GreaterOrEqual(t, int(skuY), g.SKUArea().Min.Y)

			// horizontally centered within one pixel of rounding
			left := g.QRX - content.Min.X
			right := content.Max.X - (g.QRX + g.QRSize)
			assert.InDelta(t, left, right, 1)
		})
	}
}

func TestComputeGeometry_PanicsOnDegenerateSize(t *testing.T) {
	tests := []LabelSize{
		{WidthCM: 0, HeightCM: 12.4, DPI: 300},
		{WidthCM: 9.9, HeightCM: -1, DPI: 300},
		{WidthCM: 9.9, HeightCM: 12.4, DPI: 0},
		{WidthCM: 1, HeightCM: 1, DPI: 300},
	}

	for _, size := range tests {
		t.Run(size.String(), func(t *testing.T) {
			assert.Panics(t, func() { ComputeGeometry(size) })
		})
	}
}

func TestNewLabelSize(t *testing.T) {
	s, err := NewLabelSize(9.9, 12.4, 300)
	require.NoError(t, err)
	assert.Equal(t, DefaultLabelSize(), s)

	_, err = NewLabelSize(1, 1, 300)
	assert.ErrorIs(t, err, ErrInvalidLabelSize)

	_, err = NewLabelSize(-9.9, 12.4, 300)
	assert.ErrorIs(t, err, ErrInvalidLabelSize)
}

func TestLabelSize_Px(t *testing.T) {
	s := DefaultLabelSize()
	assert.Equal(t, 118, s.Px(1))
	assert.Equal(t, 12, s.Px(0.1))
	assert.Equal(t, 0, s.Px(0))
}
