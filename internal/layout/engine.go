package layout

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/inkframe/inkframe/internal/placement"
	"github.com/inkframe/inkframe/internal/textdraw"
)

// Placement is one accepted position for an element.
type Placement struct {
	// Region holds the centre position, dimensions, and score.
	Region placement.Region
	// Scale is the factor the element ended up at.
	Scale float64
	// Lines is the chosen wrap for text blocks; nil for fixed elements.
	Lines []string
}

// Bounds returns the placed bounding box.
func (p Placement) Bounds() image.Rectangle {
	x, y := p.Region.DrawX(), p.Region.DrawY()
	return image.Rect(x, y, x+p.Region.Width, y+p.Region.Height)
}

// Engine places elements in priority order, accumulating exclusion zones
// so elements in the same pass never overlap.
type Engine struct {
	analyzer *placement.Analyzer
	text     *textdraw.Renderer
	log      hclog.Logger

	zones []ExclusionZone

	// minScore is the quality threshold below which the engine shrinks
	// and retries before accepting.
	minScore float64
	// margin spaces generated candidates away from the display edges.
	margin int
	// zonePadding grows each registered exclusion zone.
	zonePadding int
	// corners includes the four corner candidates in generated sets.
	corners bool
}

// NewEngine returns an engine with a 0.5 quality threshold, 40 pixel
// candidate margins, and 20 pixel zone padding.
func NewEngine(analyzer *placement.Analyzer, text *textdraw.Renderer, log hclog.Logger) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{
		analyzer:    analyzer,
		text:        text,
		log:         log.Named("layout"),
		minScore:    0.5,
		margin:      40,
		zonePadding: 20,
		corners:     true,
	}
}

// SetMinScore adjusts the quality threshold.
func (e *Engine) SetMinScore(score float64) { e.minScore = score }

// SetMargin adjusts the candidate edge margin.
func (e *Engine) SetMargin(margin int) { e.margin = margin }

// SetZonePadding adjusts the gap registered around placed elements.
func (e *Engine) SetZonePadding(pad int) { e.zonePadding = pad }

// SetCorners toggles the four corner candidates in generated sets.
func (e *Engine) SetCorners(enabled bool) { e.corners = enabled }

// AddExclusionZone registers space the pass must avoid, such as a region
// the host reserves for status icons.
func (e *Engine) AddExclusionZone(z ExclusionZone) {
	e.zones = append(e.zones, z)
}

// Zones returns the zones accumulated so far in this pass.
func (e *Engine) Zones() []ExclusionZone { return e.zones }

// Reset clears the exclusion zones for a new layout pass.
func (e *Engine) Reset() { e.zones = nil }

// PlaceElements places elements in descending priority order. Each
// returned placement parallels the element at the same index of the
// sorted order actually used; the elements themselves are placed and
// registered as exclusion zones as it goes.
func (e *Engine) PlaceElements(s placement.Surface, elements []Element) ([]Placement, error) {
	ordered := ByPriority(elements)
	placements := make([]Placement, 0, len(ordered))
	for _, el := range ordered {
		p, err := e.PlaceElement(s, el)
		if err != nil {
			return placements, fmt.Errorf("placing %s: %w", el.Name(), err)
		}
		placements = append(placements, p)
	}
	return placements, nil
}

// PlaceElement finds a position for one element, shrinking it in discrete
// steps down to MinScale when nothing acceptable fits. The element is
// always placed: worst case it takes the best-scoring candidate at minimum
// scale. The accepted bounding box joins the exclusion zones.
func (e *Engine) PlaceElement(s placement.Surface, el Element) (Placement, error) {
	var p Placement
	var err error
	if tb, ok := el.(TextBlock); ok {
		p, err = e.placeTextBlock(s, tb)
	} else {
		p, err = e.placeFixed(s, el)
	}
	if err != nil {
		return Placement{}, err
	}

	e.zones = append(e.zones, ExclusionZone{Rect: p.Bounds(), Padding: e.zonePadding})
	e.log.Debug("placed element",
		"name", el.Name(),
		"x", p.Region.X, "y", p.Region.Y,
		"score", p.Region.Score, "scale", p.Scale)
	return p, nil
}

func (e *Engine) placeFixed(s placement.Surface, el Element) (Placement, error) {
	bounds := s.Bounds()
	textColor, outlineColor := el.Colors()

	var best Placement
	haveBest := false

	for scale := 1.0; scale >= MinScale-1e-9; scale -= scaleStep {
		el.SetScale(scale)
		w, h, err := el.Size(e.text)
		if err != nil {
			return Placement{}, err
		}

		candidates := placement.GenerateStandardCandidates(bounds, w, h, e.margin, e.corners)
		free := e.filterZones(candidates)
		if len(free) == 0 {
			continue
		}

		winner, _, err := e.analyzer.FindBestPosition(s, free, textColor, outlineColor)
		if err != nil {
			return Placement{}, err
		}

		if !haveBest || winner.Score > best.Region.Score {
			best = Placement{Region: winner, Scale: scale}
			haveBest = true
		}
		if winner.Score >= e.minScore {
			return Placement{Region: winner, Scale: scale}, nil
		}
	}

	if haveBest {
		// Nothing met the threshold; take the best seen rather than fail.
		el.SetScale(best.Scale)
		return best, nil
	}

	// Every candidate at every scale hit an exclusion zone. Placement is
	// still guaranteed: fall back to the unfiltered set at minimum scale.
	el.SetScale(MinScale)
	w, h, err := el.Size(e.text)
	if err != nil {
		return Placement{}, err
	}
	candidates := placement.GenerateStandardCandidates(bounds, w, h, e.margin, e.corners)
	winner, _, err := e.analyzer.FindBestPosition(s, candidates, textColor, outlineColor)
	if err != nil {
		return Placement{}, err
	}
	e.log.Warn("no zone-free candidate, overlapping placement accepted", "name", el.Name())
	return Placement{Region: winner, Scale: MinScale}, nil
}

func (e *Engine) placeTextBlock(s placement.Surface, tb TextBlock) (Placement, error) {
	var best Placement
	haveBest := false

	for scale := 1.0; scale >= MinScale-1e-9; scale -= scaleStep {
		tb.SetScale(scale)
		p, ok, err := e.searchWraps(s, tb)
		if err != nil {
			return Placement{}, err
		}
		if !ok {
			continue
		}
		if !haveBest || p.Region.Score > best.Region.Score {
			best = p
			haveBest = true
		}
		if p.Region.Score >= e.minScore {
			best = p
			break
		}
	}

	if !haveBest {
		// No wrap fit anywhere, zones included. Retry at minimum scale
		// ignoring zones so the element still lands.
		tb.SetScale(MinScale)
		p, ok, err := e.searchWrapsFiltered(s, tb, false)
		if err != nil {
			return Placement{}, err
		}
		if !ok {
			return Placement{}, fmt.Errorf("text block %q does not fit the display at any wrap", tb.Name())
		}
		e.log.Warn("no zone-free candidate, overlapping placement accepted", "name", tb.Name())
		best = p
	}

	tb.SetScale(best.Scale)
	tb.SetLines(best.Lines)
	return best, nil
}

// searchWraps evaluates every line count against every candidate position
// and keeps the single best wrap-times-position combination.
func (e *Engine) searchWraps(s placement.Surface, tb TextBlock) (Placement, bool, error) {
	return e.searchWrapsFiltered(s, tb, true)
}

func (e *Engine) searchWrapsFiltered(s placement.Surface, tb TextBlock, useZones bool) (Placement, bool, error) {
	bounds := s.Bounds()
	textColor, outlineColor := tb.Colors()
	maxWidth := bounds.Dx() - 2*e.margin

	var best Placement
	haveBest := false

	for lineCount := 1; lineCount <= tb.MaxLines(); lineCount++ {
		lines, ok, err := e.wrapForCount(tb, lineCount, maxWidth)
		if err != nil {
			return Placement{}, false, err
		}
		if !ok {
			continue
		}

		tb.SetLines(lines)
		w, h, err := tb.Size(e.text)
		if err != nil {
			return Placement{}, false, err
		}

		candidates := placement.GenerateStandardCandidates(bounds, w, h, e.margin, e.corners)
		if useZones {
			candidates = e.filterZones(candidates)
		}
		if len(candidates) == 0 {
			continue
		}

		winner, _, err := e.analyzer.FindBestPosition(s, candidates, textColor, outlineColor)
		if err != nil {
			return Placement{}, false, err
		}
		if !haveBest || winner.Score > best.Region.Score {
			best = Placement{Region: winner, Scale: tb.Scale(), Lines: lines}
			haveBest = true
		}
	}
	return best, haveBest, nil
}

func (e *Engine) wrapForCount(tb TextBlock, lineCount, maxWidth int) ([]string, bool, error) {
	size := 40 * tb.Scale()
	if q, ok := tb.(*QuoteElement); ok {
		size = q.quoteSize()
	}
	return wrapForLineCount(e.text.Fonts(), tb.BlockText(), size, lineCount, tb.MinWordsPerLine(), maxWidth)
}

// FindBestWrappedPosition searches line counts 1..maxLines for text at a
// fixed size and returns the chosen lines with their position.
func (e *Engine) FindBestWrappedPosition(s placement.Surface, text string, size float64, maxLines, minWords int, textColor, outlineColor uint8) ([]string, placement.Region, error) {
	bounds := s.Bounds()
	maxWidth := bounds.Dx() - 2*e.margin

	var bestLines []string
	var best placement.Region
	haveBest := false

	for lineCount := 1; lineCount <= maxLines; lineCount++ {
		lines, ok, err := wrapForLineCount(e.text.Fonts(), text, size, lineCount, minWords, maxWidth)
		if err != nil {
			return nil, placement.Region{}, err
		}
		if !ok {
			continue
		}
		w, h, err := e.text.MeasureBlock(lines, size)
		if err != nil {
			return nil, placement.Region{}, err
		}
		candidates := e.filterZones(placement.GenerateStandardCandidates(bounds, w, h, e.margin, e.corners))
		if len(candidates) == 0 {
			continue
		}
		winner, _, err := e.analyzer.FindBestPosition(s, candidates, textColor, outlineColor)
		if err != nil {
			return nil, placement.Region{}, err
		}
		if !haveBest || winner.Score > best.Score {
			best = winner
			bestLines = lines
			haveBest = true
		}
	}
	if !haveBest {
		return nil, placement.Region{}, fmt.Errorf("text does not fit the display at any wrap up to %d lines", maxLines)
	}
	return bestLines, best, nil
}

// FindBestQuotePosition places a quote with its attribution as one block
// and returns the placement with the chosen wrap.
func (e *Engine) FindBestQuotePosition(s placement.Surface, q *QuoteElement) (Placement, error) {
	return e.PlaceElement(s, q)
}

func (e *Engine) filterZones(candidates []placement.Region) []placement.Region {
	if len(e.zones) == 0 {
		return candidates
	}
	free := candidates[:0:0]
	for _, c := range candidates {
		rect := image.Rect(c.DrawX(), c.DrawY(), c.DrawX()+c.Width, c.DrawY()+c.Height)
		blocked := false
		for _, z := range e.zones {
			if z.Overlaps(rect) {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, c)
		}
	}
	return free
}
