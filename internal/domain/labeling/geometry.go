package labeling

import (
	"image"
	"math"
)

// Physical layout constants, in centimeters unless noted.
const (
	cutMarginCM      = 0.1
	paddingCM        = 0.05
	nameBandCM       = 1.6
	skuBandCM        = 0.5
	nameTopMarginCM  = 0.4
	nameSideMarginCM = 0.5

	// skuBottomInsetCM is the distance between the SKU line center and the
	// padded bottom edge of the content area, 30px at 300 DPI
	skuBottomInsetCM = 0.254

	// qrFillRatio shrinks the largest QR that fits so the code keeps breathing room
	qrFillRatio = 0.85
)

// LabelGeometry is the fixed pixel layout of one label canvas.
// All coordinates are absolute canvas coordinates.
type LabelGeometry struct {
	Size LabelSize

	ContentWidth  int
	ContentHeight int
	CutMargin     int
	Padding       int

	NameBandHeight int
	NameTopMargin  int
	NameSideMargin int
	SKUBandHeight  int
	SKUBottomInset int

	QRSize int
	QRX    int
	QRY    int
}

// ComputeGeometry lays out a label of the given size.
// It panics on sizes that NewLabelSize would reject.
func ComputeGeometry(size LabelSize) LabelGeometry {
	g, err := computeGeometry(size)
	if err != nil {
		panic(err)
	}
	return g
}

func computeGeometry(s LabelSize) (LabelGeometry, error) {
	if !s.IsPositive() {
		return LabelGeometry{}, invalidSize(s, "dimensions and DPI must be positive")
	}

	g := LabelGeometry{
		Size:           s,
		ContentWidth:   s.Px(s.WidthCM),
		ContentHeight:  s.Px(s.HeightCM),
		CutMargin:      s.Px(cutMarginCM),
		Padding:        s.Px(paddingCM),
		NameBandHeight: s.Px(nameBandCM),
		NameTopMargin:  s.Px(nameTopMarginCM),
		NameSideMargin: s.Px(nameSideMarginCM),
		SKUBandHeight:  s.Px(skuBandCM),
		SKUBottomInset: s.Px(skuBottomInsetCM),
	}

	maxQR := min(
		g.ContentWidth-2*g.Padding,
		g.ContentHeight-g.NameBandHeight-g.SKUBandHeight-2*g.Padding,
	)
	if maxQR <= 0 {
		return LabelGeometry{}, invalidSize(s, "name and SKU bands leave no room for a QR code")
	}
	g.QRSize = int(math.Round(float64(maxQR) * qrFillRatio))
	if g.QRSize <= 0 {
		return LabelGeometry{}, invalidSize(s, "QR code would be empty")
	}
	if g.NameMaxWidth() <= 0 {
		return LabelGeometry{}, invalidSize(s, "label is narrower than the name margins")
	}

	available := g.ContentHeight - g.NameBandHeight - g.SKUBandHeight
	g.QRX = g.CutMargin + (g.ContentWidth-g.QRSize)/2
	g.QRY = g.CutMargin + g.NameBandHeight + (available-g.QRSize)/2

	return g, nil
}

// TotalWidth is the canvas width including the cut margin on both sides
func (g LabelGeometry) TotalWidth() int {
	return g.ContentWidth + 2*g.CutMargin
}

// TotalHeight is the canvas height including the cut margin on both sides
func (g LabelGeometry) TotalHeight() int {
	return g.ContentHeight + 2*g.CutMargin
}

// TotalRect is the whole canvas
func (g LabelGeometry) TotalRect() image.Rectangle {
	return image.Rect(0, 0, g.TotalWidth(), g.TotalHeight())
}

// ContentRect is the area inside the cut line
func (g LabelGeometry) ContentRect() image.Rectangle {
	return image.Rect(g.CutMargin, g.CutMargin, g.CutMargin+g.ContentWidth, g.CutMargin+g.ContentHeight)
}

// NameBand is the strip at the top of the content area reserved for the product name
func (g LabelGeometry) NameBand() image.Rectangle {
	c := g.ContentRect()
	return image.Rect(c.Min.X, c.Min.Y, c.Max.X, c.Min.Y+g.NameBandHeight)
}

// SKUBand is the strip at the bottom of the content area reserved for the SKU
func (g LabelGeometry) SKUBand() image.Rectangle {
	c := g.ContentRect()
	return image.Rect(c.Min.X, c.Max.Y-g.SKUBandHeight, c.Max.X, c.Max.Y)
}

// QRRect is the square the QR symbol is drawn into
func (g LabelGeometry) QRRect() image.Rectangle {
	return image.Rect(g.QRX, g.QRY, g.QRX+g.QRSize, g.QRY+g.QRSize)
}

// NameMaxWidth is the widest a line of the product name may be
func (g LabelGeometry) NameMaxWidth() int {
	return g.ContentWidth - 2*g.NameSideMargin
}

// NameCenter is the point the wrapped name block is centered on.
// The vertical center sits below the top margin of the name band.
func (g LabelGeometry) NameCenter() (x, y float64) {
	x = float64(g.CutMargin) + float64(g.ContentWidth)/2
	y = float64(g.CutMargin+g.NameTopMargin) + float64(g.NameBandHeight-g.NameTopMargin)/2
	return x, y
}

// SKUCenter is the point the SKU line is centered on. It is anchored to the
// bottom edge of the content area rather than centered in the SKU band.
func (g LabelGeometry) SKUCenter() (x, y float64) {
	x = float64(g.CutMargin) + float64(g.ContentWidth)/2
	y = float64(g.CutMargin + g.ContentHeight - g.Padding - g.SKUBottomInset)
	return x, y
}

// NameArea is where name text may paint: everything inside the cut line
// above the QR square. Text reaching past it is clipped.
func (g LabelGeometry) NameArea() image.Rectangle {
	c := g.ContentRect()
	return image.Rect(c.Min.X+1, c.Min.Y+1, c.Max.X, g.QRY)
}

// SKUArea is where the SKU line may paint: everything inside the cut line
// below the QR square.
func (g LabelGeometry) SKUArea() image.Rectangle {
	c := g.ContentRect()
	return image.Rect(c.Min.X+1, g.QRY+g.QRSize, c.Max.X, c.Max.Y)
}
