// Package placement scores framebuffer regions for text overlay legibility.
// Given a candidate rectangle and the text/outline colour pair that will be
// drawn there, it combines colour-histogram contrast, luminance uniformity
// and edge density into a single 0..1 desirability score, and selects the
// best among a set of candidate positions.
package placement

import "image"

// Surface is the minimal view of rendered panel content the analyzer needs:
// bounds plus a panel colour code per pixel.
type Surface interface {
	Bounds() image.Rectangle
	CodeAt(x, y int) uint8
}

// LuminanceSurface is implemented by packed full-colour buffers that can
// produce a real luminance sample per pixel. When available, variance and
// edge statistics use these samples; otherwise the analyzer falls back to
// the per-ink luminance table.
type LuminanceSurface interface {
	Surface
	LuminanceAt(x, y int) uint8
}

// codeLuminance approximates the perceived brightness of each ink for
// indexed surfaces. Indices are panel codes; the reserved codes sit at mid
// grey so stray values stay harmless.
var codeLuminance = [8]uint8{
	0,   // black
	255, // white
	200, // yellow
	120, // red
	128, // (reserved)
	80,  // blue
	100, // green
	128, // (reserved)
}
