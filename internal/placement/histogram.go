package placement

// Histogram counts region pixels per panel colour code.
type Histogram struct {
	counts [8]uint32
	// Total is the number of pixels counted.
	Total uint32
}

func (h *Histogram) add(code uint8) {
	h.counts[code&0x07]++
}

// Count returns the pixel count for a panel code.
func (h *Histogram) Count(code uint8) uint32 {
	return h.counts[code&0x07]
}

// DominantCode returns the code with the highest count. Ties resolve to the
// lowest code, so an empty histogram reports black.
func (h *Histogram) DominantCode() uint8 {
	best := uint8(0)
	max := h.counts[0]
	for code := uint8(1); code < 8; code++ {
		if h.counts[code] > max {
			max = h.counts[code]
			best = code
		}
	}
	return best
}

// Percentage returns the fraction of region pixels carrying the given code,
// in [0,1]. An empty histogram reports 0.
func (h *Histogram) Percentage(code uint8) float64 {
	if h.Total == 0 {
		return 0
	}
	return float64(h.Count(code)) / float64(h.Total)
}
