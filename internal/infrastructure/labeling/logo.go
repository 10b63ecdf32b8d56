package labeling

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	// logoSizeRatio is the logo's longest edge relative to the QR edge
	logoSizeRatio = 0.22
	// logoPaddingRatio is the white backing margin relative to the logo's longest edge
	logoPaddingRatio = 0.15
)

// LogoSource provides the logo drawn in the middle of every QR code.
type LogoSource interface {
	Load(ctx context.Context) (image.Image, error)
}

// FileLogoSource reads the logo from disk on every call
type FileLogoSource struct {
	path string
}

// NewFileLogoSource creates a logo source backed by an image file
func NewFileLogoSource(path string) *FileLogoSource {
	return &FileLogoSource{path: path}
}

// Load implements LogoSource
func (s *FileLogoSource) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, fmt.Errorf("logo path is not configured")
	}
	img, err := imaging.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open logo %s: %w", s.path, err)
	}
	return img, nil
}

// BytesLogoSource decodes the logo from an in-memory encoded image
type BytesLogoSource struct {
	data []byte
}

// NewBytesLogoSource creates a logo source from encoded PNG/JPEG/GIF bytes
func NewBytesLogoSource(data []byte) *BytesLogoSource {
	return &BytesLogoSource{data: data}
}

// Load implements LogoSource
func (s *BytesLogoSource) Load(_ context.Context) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(s.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return img, nil
}

// CachedLogoSource loads the logo once and serves the decoded image afterwards.
// Failed loads are not cached so a logo that appears later is picked up.
type CachedLogoSource struct {
	src LogoSource

	mu  sync.RWMutex
	img image.Image
}

// NewCachedLogoSource wraps src with a success-only cache
func NewCachedLogoSource(src LogoSource) *CachedLogoSource {
	return &CachedLogoSource{src: src}
}

// Load implements LogoSource
func (s *CachedLogoSource) Load(ctx context.Context) (image.Image, error) {
	s.mu.RLock()
	img := s.img
	s.mu.RUnlock()
	if img != nil {
		return img, nil
	}

	img, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.img = img
	s.mu.Unlock()
	return img, nil
}

// invertRGB replaces every color channel with 255-v and leaves alpha untouched.
// It works on non-premultiplied pixels so the alpha channel really is unchanged.
func invertRGB(img *image.NRGBA) {
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			row[i] = 255 - row[i]
			row[i+1] = 255 - row[i+1]
			row[i+2] = 255 - row[i+2]
		}
	}
}

// logoSize fits a logo of w x h into a square of maxSize, preserving the aspect ratio.
func logoSize(w, h, maxSize int) (int, int) {
	aspect := float64(w) / float64(h)
	if aspect > 1 {
		return maxSize, max(1, int(math.Round(float64(maxSize)/aspect)))
	}
	return max(1, int(math.Round(float64(maxSize)*aspect))), maxSize
}

// overlayLogo paints a white backing square in the middle of qr and draws the
// color-inverted logo on top of it.
func overlayLogo(dst *image.NRGBA, qr image.Rectangle, logo image.Image) {
	b := logo.Bounds()
	if b.Empty() {
		return
	}
	qrSize := qr.Dx()
	maxSize := int(math.Round(float64(qrSize) * logoSizeRatio))
	if maxSize <= 0 {
		return
	}
	w, h := logoSize(b.Dx(), b.Dy(), maxSize)
	x := qr.Min.X + (qrSize-w)/2
	y := qr.Min.Y + (qrSize-h)/2

	pad := int(math.Round(float64(max(w, h)) * logoPaddingRatio))
	backing := image.Rect(x-pad, y-pad, x+w+pad, y+h+pad)
	draw.Draw(dst, backing, image.White, image.Point{}, draw.Src)

	inverted := imaging.Clone(logo)
	invertRGB(inverted)
	scaled := imaging.Resize(inverted, w, h, imaging.Lanczos)
	draw.Draw(dst, image.Rect(x, y, x+w, y+h), scaled, image.Point{}, draw.Over)
}
