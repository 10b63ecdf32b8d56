package labeling

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"

	"github.com/showroom/backend/internal/domain/labeling"
)

// Legacy label layout, in pixels
const (
	LegacyQRSize       = 400
	LegacyPadding      = 40
	legacyQuietZone    = 2
	legacyNameSize     = 20
	legacyDetailSize   = 16
	legacyTextHeight   = 55
	legacyBrandedTextH = 80
)

// LegacyLabelRenderer draws the earlier label layout: a medium error-correction
// QR code on top with name, SKU and brand lines below. It has no logo, no cut
// line and keeps the text casing as given.
type LegacyLabelRenderer struct {
	qrSize  int
	padding int
	bold    *Typeface
	regular *Typeface
}

// NewLegacyLabelRenderer creates a legacy renderer with the default 400px QR code
func NewLegacyLabelRenderer() (*LegacyLabelRenderer, error) {
	bold, err := BoldTypeface()
	if err != nil {
		return nil, err
	}
	regular, err := RegularTypeface()
	if err != nil {
		return nil, err
	}
	return &LegacyLabelRenderer{
		qrSize:  LegacyQRSize,
		padding: LegacyPadding,
		bold:    bold,
		regular: regular,
	}, nil
}

type legacyLine struct {
	text   string
	bold   bool
	size   float64
	offset int
}

func (r *LegacyLabelRenderer) lines(in labeling.ProductLabelInput) ([]legacyLine, int) {
	lines := []legacyLine{
		{text: in.Name, bold: true, size: legacyNameSize, offset: 0},
		{text: "SKU: " + in.SKU, size: legacyDetailSize, offset: 30},
	}
	if brand := in.BrandName(); brand != "" {
		lines = append(lines, legacyLine{text: "Marca: " + brand, size: legacyDetailSize, offset: 55})
		return lines, legacyBrandedTextH
	}
	return lines, legacyTextHeight
}

// Size returns the canvas size for an input
func (r *LegacyLabelRenderer) Size(in labeling.ProductLabelInput) (width, height int) {
	_, textHeight := r.lines(in)
	return r.qrSize + 2*r.padding, r.qrSize + textHeight + 3*r.padding
}

// Render implements labeling.Renderer
func (r *LegacyLabelRenderer) Render(ctx context.Context, in labeling.ProductLabelInput) (*labeling.RenderedLabel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := in.ValidateDestination(); err != nil {
		return nil, err
	}

	lines, _ := r.lines(in)
	width, height := r.Size(in)
	canvas := imaging.New(width, height, color.White)

	modules, err := encodeQR(in.DestinationURL, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrRect := image.Rect(r.padding, r.padding, r.padding+r.qrSize, r.padding+r.qrSize)
	drawQR(canvas, qrRect, modules, legacyQuietZone)

	// the text block starts below the QR code; each line's baseline sits
	// padding + offset pixels into that block
	textTop := r.qrSize + 2*r.padding
	cx := float64(width) / 2
	for _, line := range lines {
		tf := r.regular
		if line.bold {
			tf = r.bold
		}
		face, err := tf.Face(line.size)
		if err != nil {
			return nil, err
		}
		drawCenteredBaseline(canvas, face, line.text, cx, float64(textTop+r.padding+line.offset))
		_ = face.Close()
	}

	data, err := encodePNG(canvas)
	if err != nil {
		return nil, err
	}
	return &labeling.RenderedLabel{PNG: data, Width: width, Height: height, SKU: in.SKU}, nil
}

var _ labeling.Renderer = (*LegacyLabelRenderer)(nil)
