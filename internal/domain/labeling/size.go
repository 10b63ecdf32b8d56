package labeling

import (
	"fmt"
	"math"

	"github.com/showroom/backend/internal/domain/shared"
)

const (
	// DefaultDPI is the print resolution labels are produced at
	DefaultDPI = 300
	// DefaultWidthCM and DefaultHeightCM are the content area of a label
	DefaultWidthCM  = 9.9
	DefaultHeightCM = 12.4

	cmPerInch = 2.54
)

// LabelSize is the physical size of a label's content area.
type LabelSize struct {
	WidthCM  float64 `json:"width_cm"`
	HeightCM float64 `json:"height_cm"`
	DPI      int     `json:"dpi"`
}

// DefaultLabelSize returns the 9.9cm x 12.4cm label at 300 DPI
func DefaultLabelSize() LabelSize {
	return LabelSize{WidthCM: DefaultWidthCM, HeightCM: DefaultHeightCM, DPI: DefaultDPI}
}

// NewLabelSize validates a label size coming from configuration or a request.
// It rejects non-positive dimensions and sizes whose bands leave no room for a QR code.
func NewLabelSize(widthCM, heightCM float64, dpi int) (LabelSize, error) {
	s := LabelSize{WidthCM: widthCM, HeightCM: heightCM, DPI: dpi}
	if _, err := computeGeometry(s); err != nil {
		return LabelSize{}, err
	}
	return s, nil
}

// Px converts centimeters to device pixels, rounded to the nearest pixel.
func (s LabelSize) Px(cm float64) int {
	return int(math.Round(cm * float64(s.DPI) / cmPerInch))
}

// ScalePx scales a pixel length laid out for DefaultDPI to this size's DPI
func (s LabelSize) ScalePx(px float64) float64 {
	return px * float64(s.DPI) / DefaultDPI
}

// IsPositive reports whether all dimensions are strictly positive
func (s LabelSize) IsPositive() bool {
	return s.WidthCM > 0 && s.HeightCM > 0 && s.DPI > 0 &&
		!math.IsInf(s.WidthCM, 0) && !math.IsInf(s.HeightCM, 0)
}

// String returns a short human readable description
func (s LabelSize) String() string {
	return fmt.Sprintf("%gcm x %gcm @ %ddpi", s.WidthCM, s.HeightCM, s.DPI)
}

func invalidSize(s LabelSize, reason string) error {
	return shared.NewDomainError(CodeInvalidLabelSize, fmt.Sprintf("invalid label size %s: %s", s, reason))
}
