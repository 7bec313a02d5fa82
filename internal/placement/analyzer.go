package placement

import (
	"errors"
	"sync"
)

// ErrNoCandidates reports a FindBestPosition call with an empty candidate
// list. Callers must supply at least one candidate; this is a contract
// violation, not a runtime condition.
var ErrNoCandidates = errors.New("placement: no candidate positions supplied")

// edgeThreshold is the luminance gradient above which a pixel counts as an
// edge on full-colour surfaces.
const edgeThreshold = 40

// varianceScale normalizes luminance variance; observed panel content tops
// out around this value for 8-bit samples.
const varianceScale = 6000.0

// Weights balances the scoring metrics. They need not sum to 1, though the
// defaults do.
type Weights struct {
	// Contrast weights how distinguishable the text colours are from the
	// region content.
	Contrast float64
	// Uniformity weights low luminance variance.
	Uniformity float64
	// EdgeAvoidance weights low edge density.
	EdgeAvoidance float64
}

// DefaultWeights returns the standard metric balance.
func DefaultWeights() Weights {
	return Weights{Contrast: 0.5, Uniformity: 0.3, EdgeAvoidance: 0.2}
}

// Keepout is the inset from each display edge inside which text must never
// be placed.
type Keepout struct {
	Top, Bottom, Left, Right int
}

// UniformKeepout returns a keepout with the same margin on all sides.
func UniformKeepout(margin int) Keepout {
	return Keepout{Top: margin, Bottom: margin, Left: margin, Right: margin}
}

// Metrics carries the detailed analysis of one region.
type Metrics struct {
	// Histogram is the region's colour distribution.
	Histogram Histogram
	// Variance is the population variance of per-pixel luminance.
	Variance float64
	// EdgeDensity is the fraction of sampled pixels classified as edges.
	EdgeDensity float64
	// ContrastScore rates the text/outline pair against the region, 0..1.
	ContrastScore float64
	// UniformityScore is 1 minus normalized variance, 0..1.
	UniformityScore float64
	// OverallScore is the weighted combination, clamped to 0..1.
	OverallScore float64
}

// Analyzer scores framebuffer regions for text placement. The zero value is
// not ready for use; construct with NewAnalyzer.
type Analyzer struct {
	weights  Weights
	keepout  Keepout
	parallel bool
}

// NewAnalyzer returns an analyzer with default weights, no keepout, and
// parallel candidate scoring enabled.
func NewAnalyzer() *Analyzer {
	return &Analyzer{weights: DefaultWeights(), parallel: true}
}

// SetWeights replaces the scoring weights.
func (a *Analyzer) SetWeights(w Weights) { a.weights = w }

// Weights returns the current scoring weights.
func (a *Analyzer) Weights() Weights { return a.weights }

// SetKeepout sets the edge margins text placement must respect.
func (a *Analyzer) SetKeepout(k Keepout) { a.keepout = k }

// Keepout returns the current keepout margins.
func (a *Analyzer) Keepout() Keepout { return a.keepout }

// SetParallel toggles multi-goroutine candidate scoring. Scores are
// identical either way; this only affects throughput.
func (a *Analyzer) SetParallel(enable bool) { a.parallel = enable }

// IsWithinSafeArea reports whether a centre-described region lies fully
// inside the display minus the keepout margins.
func (a *Analyzer) IsWithinSafeArea(displayWidth, displayHeight, x, y, w, h int) bool {
	left := x - w/2
	right := x + w/2
	top := y - h/2
	bottom := y + h/2

	if left < a.keepout.Left {
		return false
	}
	if right > displayWidth-a.keepout.Right {
		return false
	}
	if top < a.keepout.Top {
		return false
	}
	if bottom > displayHeight-a.keepout.Bottom {
		return false
	}
	return true
}

// ScoreRegion returns the overall placement score for a top-left-described
// region.
func (a *Analyzer) ScoreRegion(s Surface, x, y, w, h int, textColor, outlineColor uint8) float64 {
	return a.AnalyzeRegion(s, x, y, w, h, textColor, outlineColor).OverallScore
}

// AnalyzeRegion computes the full metric set for a top-left-described
// region, clamped to the surface bounds. Degenerate regions report zero
// metrics.
func (a *Analyzer) AnalyzeRegion(s Surface, x, y, w, h int, textColor, outlineColor uint8) Metrics {
	var m Metrics
	if s == nil || w <= 0 || h <= 0 {
		return m
	}

	bounds := s.Bounds()
	if x < bounds.Min.X {
		w -= bounds.Min.X - x
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		h -= bounds.Min.Y - y
		y = bounds.Min.Y
	}
	if x+w > bounds.Max.X {
		w = bounds.Max.X - x
	}
	if y+h > bounds.Max.Y {
		h = bounds.Max.Y - y
	}
	if w <= 0 || h <= 0 {
		return m
	}

	m.Histogram = a.histogram(s, x, y, w, h)
	m.Variance = a.variance(s, x, y, w, h)
	m.EdgeDensity = a.edgeDensity(s, x, y, w, h)
	m.ContrastScore = contrastScore(&m.Histogram, textColor, outlineColor)

	normVar := m.Variance / varianceScale
	if normVar > 1 {
		normVar = 1
	}
	m.UniformityScore = 1 - normVar

	edgeScore := 1 - m.EdgeDensity
	m.OverallScore = clamp01(a.weights.Contrast*m.ContrastScore +
		a.weights.Uniformity*m.UniformityScore +
		a.weights.EdgeAvoidance*edgeScore)
	return m
}

// FindBestPosition scores every candidate and returns the highest scoring
// one. Candidates overlapping the keepout margins score exactly 0. Ties
// resolve to the first candidate in input order. The scored slice parallels
// the input with Score filled in.
func (a *Analyzer) FindBestPosition(s Surface, candidates []Region, textColor, outlineColor uint8) (Region, []Region, error) {
	if len(candidates) == 0 {
		return Region{}, nil, ErrNoCandidates
	}

	bounds := s.Bounds()
	scored := make([]Region, len(candidates))
	copy(scored, candidates)

	score := func(i int) {
		c := &scored[i]
		if !a.IsWithinSafeArea(bounds.Dx(), bounds.Dy(), c.X, c.Y, c.Width, c.Height) {
			c.Score = 0
			return
		}
		c.Score = a.ScoreRegion(s, c.DrawX(), c.DrawY(), c.Width, c.Height, textColor, outlineColor)
	}

	if a.parallel && len(scored) > 2 {
		// Each goroutine writes only its own slot, so the scores and the
		// selected winner are identical to a sequential run.
		var wg sync.WaitGroup
		for i := range scored {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				score(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range scored {
			score(i)
		}
	}

	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[best].Score {
			best = i
		}
	}
	return scored[best], scored, nil
}

func (a *Analyzer) histogram(s Surface, x, y, w, h int) Histogram {
	var hist Histogram
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			hist.add(s.CodeAt(px, py))
		}
	}
	hist.Total = uint32(w * h)
	return hist
}

func (a *Analyzer) variance(s Surface, x, y, w, h int) float64 {
	ls, hasLuma := s.(LuminanceSurface)

	var sum, sumSq uint64
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			var lum uint8
			if hasLuma {
				lum = ls.LuminanceAt(px, py)
			} else {
				lum = codeLuminance[s.CodeAt(px, py)&0x07]
			}
			sum += uint64(lum)
			sumSq += uint64(lum) * uint64(lum)
		}
	}

	count := float64(w * h)
	if count == 0 {
		return 0
	}
	mean := float64(sum) / count
	meanSq := float64(sumSq) / count
	return meanSq - mean*mean
}

// edgeDensity estimates how busy a region is. Full-colour surfaces compare
// each pixel's luminance with its right and lower neighbours against a
// gradient threshold; indexed surfaces count ink transitions, since any
// code change is a visible edge at six colours.
func (a *Analyzer) edgeDensity(s Surface, x, y, w, h int) float64 {
	if w < 2 || h < 2 {
		return 0
	}

	ls, hasLuma := s.(LuminanceSurface)
	var edges, checked uint32

	for py := y; py < y+h-1; py++ {
		for px := x; px < x+w-1; px++ {
			if hasLuma {
				l := int(ls.LuminanceAt(px, py))
				gradX := abs(l - int(ls.LuminanceAt(px+1, py)))
				gradY := abs(l - int(ls.LuminanceAt(px, py+1)))
				grad := gradX
				if gradY > grad {
					grad = gradY
				}
				if grad > edgeThreshold {
					edges++
				}
			} else {
				c := s.CodeAt(px, py)
				if c != s.CodeAt(px+1, py) || c != s.CodeAt(px, py+1) {
					edges++
				}
			}
			checked++
		}
	}

	if checked == 0 {
		return 0
	}
	return float64(edges) / float64(checked)
}

// contrastScore rates how well the text/outline pair stands out from the
// region content. Background pixels matching the text colour hurt twice as
// much as pixels matching the outline, which is thinner. A uniform region
// in a third colour earns a bonus.
func contrastScore(hist *Histogram, textColor, outlineColor uint8) float64 {
	if hist.Total == 0 {
		return 0.5
	}

	penalty := hist.Percentage(textColor)*1.0 + hist.Percentage(outlineColor)*0.5
	score := 1.0 - penalty

	dominant := hist.DominantCode()
	dominantPct := hist.Percentage(dominant)
	if dominantPct > 0.7 && dominant != textColor && dominant != outlineColor {
		score += 0.2 * (dominantPct - 0.7) / 0.3
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
