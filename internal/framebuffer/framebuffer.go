// Package framebuffer provides the pixel buffers the placement analyzer and
// layout engine read and draw against: an indexed six-colour panel buffer
// storing one palette code per byte, and a packed adapter over a standard
// RGBA image for hosts that keep full-colour content in memory.
package framebuffer

import (
	"image"
	"image/color"

	"github.com/inkframe/inkframe/internal/spectra"
)

// Indexed is a six-colour framebuffer with one panel code per byte. It
// implements image.Image and draw.Image against the calibrated palette, so
// standard library drawing (including font rendering) works directly on
// panel content, plus fast code-level accessors for bulk pixel work.
type Indexed struct {
	// Pix holds one panel colour code per pixel.
	Pix []uint8
	// Stride is the Pix distance between vertically adjacent pixels.
	Stride int
	// Rect is the buffer's bounds.
	Rect image.Rectangle

	palette *spectra.Palette
}

// NewIndexed creates a width x height buffer cleared to white, the panel's
// blank state, rendered through the given palette.
func NewIndexed(width, height int, palette *spectra.Palette) *Indexed {
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = spectra.CodeWhite
	}
	return &Indexed{
		Pix:     pix,
		Stride:  width,
		Rect:    image.Rect(0, 0, width, height),
		palette: palette,
	}
}

// ColorModel converts arbitrary colours to the nearest ink colour.
func (b *Indexed) ColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		r, g, bb, _ := c.RGBA()
		code := b.palette.Nearest(uint8(r>>8), uint8(g>>8), uint8(bb>>8))
		return b.palette.RGBA(code)
	})
}

// Bounds returns the buffer bounds.
func (b *Indexed) Bounds() image.Rectangle { return b.Rect }

// At returns the calibrated colour of the pixel at (x, y).
func (b *Indexed) At(x, y int) color.Color {
	return b.palette.RGBA(b.CodeAt(x, y))
}

// CodeAt returns the panel code at (x, y). Out-of-bounds reads return
// white, the panel's blank state.
func (b *Indexed) CodeAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return spectra.CodeWhite
	}
	return b.Pix[b.pixOffset(x, y)]
}

// Set quantizes an arbitrary colour to the nearest ink and stores its code.
// It implements draw.Image.
func (b *Indexed) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	r, g, bb, _ := c.RGBA()
	b.Pix[b.pixOffset(x, y)] = b.palette.Nearest(uint8(r>>8), uint8(g>>8), uint8(bb>>8))
}

// SetCode stores a panel code directly, skipping colour conversion.
func (b *Indexed) SetCode(x, y int, code uint8) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	b.Pix[b.pixOffset(x, y)] = code
}

// SetCodeRow bulk-writes a full or partial row of panel codes starting at
// the left edge. Rows longer than the buffer width are truncated.
func (b *Indexed) SetCodeRow(y int, codes []uint8) {
	if y < b.Rect.Min.Y || y >= b.Rect.Max.Y {
		return
	}
	n := len(codes)
	if w := b.Rect.Dx(); n > w {
		n = w
	}
	copy(b.Pix[b.pixOffset(b.Rect.Min.X, y):], codes[:n])
}

// CodeRow returns the stored codes for one row. The slice aliases the
// buffer; callers must not hold it across writes.
func (b *Indexed) CodeRow(y int) []uint8 {
	if y < b.Rect.Min.Y || y >= b.Rect.Max.Y {
		return nil
	}
	off := b.pixOffset(b.Rect.Min.X, y)
	return b.Pix[off : off+b.Rect.Dx()]
}

// Palette returns the palette the buffer renders through.
func (b *Indexed) Palette() *spectra.Palette { return b.palette }

func (b *Indexed) pixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x - b.Rect.Min.X)
}

// Packed adapts a full-colour RGBA image to the analyzer's view of panel
// content. Codes are derived through the injected mapping function;
// luminance comes straight from the green channel, which sits mid-spectrum
// and tracks perceived brightness closely enough for variance and edge
// statistics.
type Packed struct {
	// Img is the backing full-colour image.
	Img *image.RGBA
	// Map converts an RGB sample to a panel code.
	Map func(r, g, b uint8) uint8
}

// NewPacked wraps an RGBA image with a code mapping function.
func NewPacked(img *image.RGBA, mapFunc func(r, g, b uint8) uint8) *Packed {
	return &Packed{Img: img, Map: mapFunc}
}

// Bounds returns the backing image bounds.
func (p *Packed) Bounds() image.Rectangle { return p.Img.Bounds() }

// CodeAt maps the pixel at (x, y) to its panel code.
func (p *Packed) CodeAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(p.Img.Rect)) {
		return spectra.CodeWhite
	}
	off := p.Img.PixOffset(x, y)
	return p.Map(p.Img.Pix[off], p.Img.Pix[off+1], p.Img.Pix[off+2])
}

// LuminanceAt returns the green channel of the pixel at (x, y).
func (p *Packed) LuminanceAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(p.Img.Rect)) {
		return 0
	}
	return p.Img.Pix[p.Img.PixOffset(x, y)+1]
}
