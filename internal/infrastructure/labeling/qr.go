package labeling

import (
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"

	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/shared"
)

var (
	black = color.NRGBA{A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// encodeQR returns the module matrix for content without quiet zone, indexed [row][col].
func encodeQR(content string, level qrcode.RecoveryLevel) ([][]bool, error) {
	q, err := qrcode.New(content, level)
	if err != nil {
		return nil, shared.NewDomainError(labeling.CodeRenderFailed, fmt.Sprintf("failed to encode QR code: %v", err))
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// drawQR scales the module matrix, surrounded by quietZone light modules, into rect.
// Every pixel maps to exactly one module so the symbol fills rect edge to edge.
func drawQR(dst *image.NRGBA, rect image.Rectangle, modules [][]bool, quietZone int) {
	count := len(modules)
	total := count + 2*quietZone
	w, h := rect.Dx(), rect.Dy()
	for py := 0; py < h; py++ {
		row := py*total/h - quietZone
		for px := 0; px < w; px++ {
			col := px*total/w - quietZone
			c := white
			if row >= 0 && row < count && col >= 0 && col < count && modules[row][col] {
				c = black
			}
			dst.SetNRGBA(rect.Min.X+px, rect.Min.Y+py, c)
		}
	}
}

// drawDashedRect strokes a 1px dashed outline along r. The dash phase runs
// continuously around the perimeter, clockwise from the top-left corner.
func drawDashedRect(dst *image.NRGBA, r image.Rectangle, dash, gap int) {
	period := dash + gap
	step := 0
	plot := func(x, y int) {
		if step%period < dash {
			dst.SetNRGBA(x, y, black)
		}
		step++
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		plot(x, r.Min.Y)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		plot(r.Max.X, y)
	}
	for x := r.Max.X; x > r.Min.X; x-- {
		plot(x, r.Max.Y)
	}
	for y := r.Max.Y; y > r.Min.Y; y-- {
		plot(r.Min.X, y)
	}
}
