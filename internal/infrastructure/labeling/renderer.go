// Package labeling renders product QR labels and arranges them on printable sheets.
package labeling

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/shared"
)

// Canonical label drawing constants
const (
	// DefaultFontSize is the name and SKU size in pixels at 300 DPI. Other
	// resolutions scale it unless WithFontSize is given.
	DefaultFontSize = 48
	cutDashLength   = 10
	cutDashGap      = 8
	qrQuietZone     = 1
	skuPrefix       = "SKU: "
)

// QrLabelRenderer draws the canonical label: dashed cut line, product name,
// high error-correction QR code with the inverted logo in its center, and SKU.
// It holds no mutable state and is safe for concurrent use.
type QrLabelRenderer struct {
	geometry labeling.LabelGeometry
	bold     *Typeface
	fontSize float64
	logo     LogoSource
	logger   *zap.Logger
}

// RendererOption configures a QrLabelRenderer
type RendererOption func(*QrLabelRenderer)

// WithLogo sets the logo drawn on top of the QR code
func WithLogo(src LogoSource) RendererOption {
	return func(r *QrLabelRenderer) {
		r.logo = src
	}
}

// WithLogger sets the logger used for degraded renders
func WithLogger(logger *zap.Logger) RendererOption {
	return func(r *QrLabelRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFontSize overrides the name and SKU font size in pixels. Zero keeps
// the DPI-scaled default.
func WithFontSize(px float64) RendererOption {
	return func(r *QrLabelRenderer) {
		if px > 0 {
			r.fontSize = px
		}
	}
}

// WithTypeface overrides the bold typeface used for name and SKU
func WithTypeface(t *Typeface) RendererOption {
	return func(r *QrLabelRenderer) {
		if t != nil {
			r.bold = t
		}
	}
}

// NewQrLabelRenderer creates a renderer for labels laid out by geometry
func NewQrLabelRenderer(geometry labeling.LabelGeometry, opts ...RendererOption) (*QrLabelRenderer, error) {
	r := &QrLabelRenderer{
		geometry: geometry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fontSize == 0 {
		r.fontSize = geometry.Size.ScalePx(DefaultFontSize)
	}
	if r.bold == nil {
		bold, err := BoldTypeface()
		if err != nil {
			return nil, err
		}
		r.bold = bold
	}
	return r, nil
}

// Geometry returns the layout this renderer draws with
func (r *QrLabelRenderer) Geometry() labeling.LabelGeometry {
	return r.geometry
}

// Render draws the label and encodes it as PNG.
func (r *QrLabelRenderer) Render(ctx context.Context, in labeling.ProductLabelInput) (*labeling.RenderedLabel, error) {
	img, err := r.RenderImage(ctx, in)
	if err != nil {
		return nil, err
	}
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	return &labeling.RenderedLabel{
		PNG:    data,
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		SKU:    in.SKU,
	}, nil
}

// RenderImage draws the label without encoding it.
func (r *QrLabelRenderer) RenderImage(ctx context.Context, in labeling.ProductLabelInput) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := in.ValidateDestination(); err != nil {
		return nil, err
	}

	g := r.geometry
	canvas := imaging.New(g.TotalWidth(), g.TotalHeight(), color.White)

	drawDashedRect(canvas, g.ContentRect(), cutDashLength, cutDashGap)

	modules, err := encodeQR(in.DestinationURL, qrcode.Highest)
	if err != nil {
		return nil, err
	}
	drawQR(canvas, g.QRRect(), modules, qrQuietZone)

	r.drawLogo(ctx, canvas, in.SKU)

	face, err := r.bold.Face(r.fontSize)
	if err != nil {
		return nil, shared.NewDomainError(labeling.CodeRenderFailed, err.Error())
	}
	defer face.Close()

	// text is clipped to the areas around the QR square so that long names
	// and SKUs can never damage the code or the cut line
	nameArea := canvas.SubImage(g.NameArea()).(*image.NRGBA)
	nameX, nameY := g.NameCenter()
	drawWrappedBlock(nameArea, face, wrapWords(face, upper(in.Name), g.NameMaxWidth()), nameX, nameY, r.fontSize*lineHeightFactor)

	skuArea := canvas.SubImage(g.SKUArea()).(*image.NRGBA)
	skuX, skuY := g.SKUCenter()
	drawCenteredMiddle(skuArea, face, SKUText(in.SKU), skuX, skuY)

	return canvas, nil
}

// NameLines returns the name exactly as it is laid out in the name band
func (r *QrLabelRenderer) NameLines(name string) ([]string, error) {
	face, err := r.bold.Face(r.fontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return wrapWords(face, upper(name), r.geometry.NameMaxWidth()), nil
}

// SKUText returns the SKU line printed at the bottom of a label
func SKUText(sku string) string {
	return skuPrefix + upper(sku)
}

func (r *QrLabelRenderer) drawLogo(ctx context.Context, canvas *image.NRGBA, sku string) {
	if r.logo == nil {
		return
	}
	logo, err := r.logo.Load(ctx)
	if err != nil {
		r.logger.Warn("Label logo unavailable, rendering without logo",
			zap.String("sku", sku),
			zap.Error(err),
		)
		return
	}
	overlayLogo(canvas, r.geometry.QRRect(), logo)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode label PNG: %w", err)
	}
	return buf.Bytes(), nil
}

var _ labeling.Renderer = (*QrLabelRenderer)(nil)
