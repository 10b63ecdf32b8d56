package labeling

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lineHeightFactor is the spacing between wrapped lines relative to the font size
const lineHeightFactor = 1.2

// Typeface is a parsed font shared by every render. Faces derived from it are
// created per render because a font.Face is not safe for concurrent use.
type Typeface struct {
	font *opentype.Font
}

// BoldTypeface returns the bundled Go Bold font
func BoldTypeface() (*Typeface, error) {
	return parseTypeface(gobold.TTF)
}

// RegularTypeface returns the bundled Go Regular font
func RegularTypeface() (*Typeface, error) {
	return parseTypeface(goregular.TTF)
}

// ParseTypeface parses a TrueType or OpenType font file
func ParseTypeface(data []byte) (*Typeface, error) {
	return parseTypeface(data)
}

func parseTypeface(data []byte) (*Typeface, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Typeface{font: f}, nil
}

// Face returns a face rendering sizePx pixels per em.
func (t *Typeface) Face(sizePx float64) (font.Face, error) {
	face, err := opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// upper upper-cases label text using Spanish casing rules.
// A Caser keeps state, so one is created per call.
func upper(s string) string {
	return cases.Upper(language.Spanish).String(s)
}

// wrapWords greedily packs words into lines no wider than maxWidth.
// A word that is wider than maxWidth on its own is kept on its own line.
func wrapWords(face font.Face, text string, maxWidth int) []string {
	limit := fixed.I(maxWidth)
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if font.MeasureString(face, candidate) > limit && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// measure returns the advance width of s in pixels
func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// drawCenteredMiddle draws s horizontally centered on cx with its em box vertically centered on cy.
func drawCenteredMiddle(dst draw.Image, face font.Face, s string, cx, cy float64) {
	m := face.Metrics()
	baseline := cy + float64(m.Ascent-m.Descent)/64/2
	drawCenteredBaseline(dst, face, s, cx, baseline)
}

// drawCenteredBaseline draws s horizontally centered on cx with its baseline at y.
func drawCenteredBaseline(dst draw.Image, face font.Face, s string, cx, y float64) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  toPoint(cx-measure(face, s)/2, y),
	}
	d.DrawString(s)
}

// drawWrappedBlock draws lines centered on (cx, cy) with the given line height.
func drawWrappedBlock(dst draw.Image, face font.Face, lines []string, cx, cy, lineHeight float64) {
	y := cy - float64(len(lines))*lineHeight/2 + lineHeight/2
	for _, line := range lines {
		drawCenteredMiddle(dst, face, line, cx, y)
		y += lineHeight
	}
}

func toPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}
}
