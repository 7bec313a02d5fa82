package placement

import "image"

// Region is a candidate rectangle for text placement, described by its
// centre so candidates can be laid out symmetrically around display
// landmarks. Score is filled in by the analyzer.
type Region struct {
	// X, Y is the region centre.
	X, Y int
	// Width, Height is the text bounding box.
	Width, Height int
	// Score is the placement desirability, 0 (worst) to 1 (best).
	Score float64
}

// DrawX returns the top-left X for drawing at this region.
func (r Region) DrawX() int { return r.X - r.Width/2 }

// DrawY returns the top-left Y for drawing at this region.
func (r Region) DrawY() int { return r.Y - r.Height/2 }

// GenerateStandardCandidates emits the stock candidate set for a text block
// of the given size: five edge-safe positions (centre, top-centre,
// bottom-centre, left-centre, right-centre), plus the four corners when
// includeCorners is set. The margin insets the non-centre positions from
// the display edges.
func GenerateStandardCandidates(bounds image.Rectangle, textWidth, textHeight, margin int, includeCorners bool) []Region {
	w := bounds.Dx()
	h := bounds.Dy()
	cx := w / 2
	cy := h / 2

	left := margin + textWidth/2
	right := w - margin - textWidth/2
	top := margin + textHeight/2
	bottom := h - margin - textHeight/2

	candidates := []Region{
		{X: cx, Y: cy, Width: textWidth, Height: textHeight},
		{X: cx, Y: top, Width: textWidth, Height: textHeight},
		{X: cx, Y: bottom, Width: textWidth, Height: textHeight},
		{X: left, Y: cy, Width: textWidth, Height: textHeight},
		{X: right, Y: cy, Width: textWidth, Height: textHeight},
	}
	if includeCorners {
		candidates = append(candidates,
			Region{X: left, Y: top, Width: textWidth, Height: textHeight},
			Region{X: right, Y: top, Width: textWidth, Height: textHeight},
			Region{X: left, Y: bottom, Width: textWidth, Height: textHeight},
			Region{X: right, Y: bottom, Width: textWidth, Height: textHeight},
		)
	}
	return candidates
}
