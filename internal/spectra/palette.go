// Package spectra maps arbitrary RGB colour to the six-ink Spectra palette
// used by reflective colour e-paper panels. Matching runs in CIE Lab space
// for perceptual accuracy, with an optional precomputed lookup table and
// Floyd-Steinberg error diffusion for photographic content.
package spectra

import "image/color"

// Panel colour codes. The controller reserves code 4, so the six inks map to
// the non-contiguous set {0,1,2,3,5,6}. This gap is part of the wire format
// and must not be "fixed".
const (
	CodeBlack  uint8 = 0
	CodeWhite  uint8 = 1
	CodeYellow uint8 = 2
	CodeRed    uint8 = 3
	CodeBlue   uint8 = 5
	CodeGreen  uint8 = 6
)

// NumInks is the number of physical inks in the palette.
const NumInks = 6

// codeByIndex maps a palette index (0..5) to its panel colour code.
var codeByIndex = [NumInks]uint8{
	CodeBlack, CodeWhite, CodeYellow, CodeRed, CodeBlue, CodeGreen,
}

// indexOfCode maps a panel colour code back to its palette index.
// Unknown codes resolve to white, matching the panel's clear state.
func indexOfCode(code uint8) int {
	for i, c := range codeByIndex {
		if c == code {
			return i
		}
	}
	return 1
}

// Codes returns the six panel colour codes in palette index order.
func Codes() [NumInks]uint8 {
	return codeByIndex
}

// IndexForCode maps a panel colour code to its palette index, or -1 when
// the code names no ink.
func IndexForCode(code uint8) int {
	for i, c := range codeByIndex {
		if c == code {
			return i
		}
	}
	return -1
}

// Palette holds the calibrated RGB values for the six inks together with
// their derived Lab coordinates. The Lab cache is recomputed whenever an
// entry changes, so distance queries never pay for the conversion.
type Palette struct {
	rgb [NumInks][3]uint8
	lab [NumInks][3]float64
}

// DefaultPalette returns the factory-calibrated palette. The values are
// measured reflective ink colours, noticeably less saturated than the
// idealized primaries: e-paper black is a very dark grey and white is a warm
// off-white.
func DefaultPalette() Palette {
	var p Palette
	p.rgb = [NumInks][3]uint8{
		{10, 10, 10},    // black
		{245, 245, 235}, // white
		{245, 210, 50},  // yellow
		{190, 60, 55},   // red
		{45, 75, 160},   // blue
		{55, 140, 85},   // green
	}
	p.updateLab()
	return p
}

// IdealizedPalette returns pure RGB primaries. Useful for synthetic test
// content; real panels never reach these colours.
func IdealizedPalette() Palette {
	var p Palette
	p.rgb = [NumInks][3]uint8{
		{0, 0, 0},
		{255, 255, 255},
		{255, 255, 0},
		{255, 0, 0},
		{0, 0, 255},
		{0, 255, 0},
	}
	p.updateLab()
	return p
}

// SetColor replaces the calibrated RGB value at the given palette index
// (0..5) and refreshes the Lab cache. Out-of-range indices are ignored.
func (p *Palette) SetColor(index int, r, g, b uint8) {
	if index < 0 || index >= NumInks {
		return
	}
	p.rgb[index] = [3]uint8{r, g, b}
	p.updateLab()
}

func (p *Palette) updateLab() {
	for i := range p.rgb {
		l, a, b := rgbToLab(p.rgb[i][0], p.rgb[i][1], p.rgb[i][2])
		p.lab[i] = [3]float64{l, a, b}
	}
}

// RGB returns the calibrated RGB triple for a panel colour code.
func (p *Palette) RGB(code uint8) (r, g, b uint8) {
	e := p.rgb[indexOfCode(code)]
	return e[0], e[1], e[2]
}

// RGBA returns the calibrated colour for a panel colour code as an opaque
// color.RGBA, for rendering previews of panel content.
func (p *Palette) RGBA(code uint8) color.RGBA {
	r, g, b := p.RGB(code)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Nearest returns the panel code with the smallest CIE76 delta-E to the
// given colour. It is the palette-level entry point for callers that hold a
// Palette but no Mapper, such as paletted image types.
func (p *Palette) Nearest(r, g, b uint8) uint8 {
	return p.nearestLab(r, g, b)
}

// nearestRGB returns the panel code whose calibrated RGB value is closest to
// the input under a weighted squared Euclidean distance. The 2/4/1 channel
// weights are a crude stand-in for the eye's green-heavy sensitivity. Ties
// resolve to the lowest palette index.
func (p *Palette) nearestRGB(r, g, b uint8) uint8 {
	minDist := uint32(1<<32 - 1)
	best := 1
	for i := range p.rgb {
		dr := int32(r) - int32(p.rgb[i][0])
		dg := int32(g) - int32(p.rgb[i][1])
		db := int32(b) - int32(p.rgb[i][2])
		dist := uint32(dr*dr)*2 + uint32(dg*dg)*4 + uint32(db*db)
		if dist < minDist {
			minDist = dist
			best = i
		}
	}
	return codeByIndex[best]
}

// nearestLab returns the panel code with the smallest CIE76 delta-E to the
// input colour. The square root is skipped since only the argmin matters.
// Ties resolve to the lowest palette index.
func (p *Palette) nearestLab(r, g, b uint8) uint8 {
	l, a, bb := rgbToLab(r, g, b)
	minDist := 1e18
	best := 1
	for i := range p.lab {
		dl := l - p.lab[i][0]
		da := a - p.lab[i][1]
		db := bb - p.lab[i][2]
		dist := dl*dl + da*da + db*db
		if dist < minDist {
			minDist = dist
			best = i
		}
	}
	return codeByIndex[best]
}
