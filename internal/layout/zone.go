// Package layout places prioritized text elements onto a rendered
// framebuffer. It asks the placement analyzer where text stays legible,
// tracks the regions earlier elements claimed, and shrinks elements that do
// not fit at full size.
package layout

import "image"

// ExclusionZone marks space already consumed by a placed element. Later
// elements in the same pass avoid it regardless of how well the underlying
// content would score.
type ExclusionZone struct {
	// Rect is the placed element's bounding box.
	Rect image.Rectangle
	// Padding grows the rect on all sides so neighbouring text keeps a
	// visible gap.
	Padding int
}

// Expanded returns the rect grown by the padding.
func (z ExclusionZone) Expanded() image.Rectangle {
	return image.Rect(
		z.Rect.Min.X-z.Padding,
		z.Rect.Min.Y-z.Padding,
		z.Rect.Max.X+z.Padding,
		z.Rect.Max.Y+z.Padding,
	)
}

// Overlaps reports whether r intersects the padded zone.
func (z ExclusionZone) Overlaps(r image.Rectangle) bool {
	return z.Expanded().Overlaps(r)
}
