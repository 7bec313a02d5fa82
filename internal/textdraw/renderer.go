package textdraw

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Align selects horizontal text alignment relative to the given x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style describes how a string is painted.
type Style struct {
	// Size is the point size.
	Size float64
	// Fill is the glyph colour.
	Fill color.Color
	// Outline, when non-nil, paints a one pixel halo around each glyph
	// before the fill pass. Reflective panels have no alpha, so the halo is
	// how text stays legible over busy content.
	Outline color.Color
	// Align positions the string relative to the draw x.
	Align Align
}

// Renderer draws styled strings onto any draw.Image, including paletted
// framebuffers.
type Renderer struct {
	fonts *FontManager
}

// NewRenderer returns a renderer over the given font manager.
func NewRenderer(fonts *FontManager) *Renderer {
	return &Renderer{fonts: fonts}
}

// Fonts exposes the underlying font manager for measurement.
func (r *Renderer) Fonts() *FontManager { return r.fonts }

// outlineOffsets are the eight neighbour positions for the halo pass.
var outlineOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// DrawString paints s with the baseline at y. The x coordinate is the
// left, centre, or right edge of the string depending on the style's
// alignment. It returns the painted width in pixels.
func (r *Renderer) DrawString(dst draw.Image, s string, x, y int, style Style) (int, error) {
	face, err := r.fonts.Face(style.Size)
	if err != nil {
		return 0, err
	}

	width := font.MeasureString(face, s).Ceil()
	switch style.Align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width
	}

	if style.Outline != nil {
		for _, off := range outlineOffsets {
			drawAt(dst, face, s, x+off[0], y+off[1], style.Outline)
		}
	}
	drawAt(dst, face, s, x, y, style.Fill)
	return width, nil
}

// DrawLines paints multiple lines with the first baseline at y, advancing
// by the face's line height. It returns the widest painted line.
func (r *Renderer) DrawLines(dst draw.Image, lines []string, x, y int, style Style) (int, error) {
	lineHeight, err := r.fonts.LineHeight(style.Size)
	if err != nil {
		return 0, err
	}

	widest := 0
	for i, line := range lines {
		w, err := r.DrawString(dst, line, x, y+i*lineHeight, style)
		if err != nil {
			return widest, err
		}
		if w > widest {
			widest = w
		}
	}
	return widest, nil
}

func drawAt(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// MeasureBlock returns the pixel width and height of lines at the given
// size, using the widest line and the line count.
func (r *Renderer) MeasureBlock(lines []string, size float64) (int, int, error) {
	lineHeight, err := r.fonts.LineHeight(size)
	if err != nil {
		return 0, 0, err
	}

	widest := 0
	for _, line := range lines {
		w, err := r.fonts.TextWidth(size, line)
		if err != nil {
			return 0, 0, err
		}
		if w > widest {
			widest = w
		}
	}
	return widest, lineHeight * len(lines), nil
}

// Sanitize strips characters the bundled font cannot render, collapsing
// runs of whitespace. Quote feeds are scraped and occasionally carry
// control bytes.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			space = true
		case r < 0x20:
			// drop control characters
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
