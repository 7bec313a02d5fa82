package spectra

// Mode selects the colour matching strategy.
type Mode int

const (
	// ModeNearestRGB matches by weighted RGB distance. Fastest, lowest
	// quality; acceptable for flat synthetic content.
	ModeNearestRGB Mode = iota
	// ModeLab matches by CIE76 delta-E in Lab space. The default.
	ModeLab
	// ModeDither is ModeLab plus Floyd-Steinberg error diffusion when
	// pixels are streamed through MapColorDithered. Best for photos.
	ModeDither
)

// Mapper converts RGB colour to panel codes. It owns the active palette,
// its Lab cache, an optional lookup table, and the dither state.
//
// A Mapper is single-owner: callers must not change the palette while a
// mapping or dithering pass is in flight, and must not interleave two
// dithering streams on the same instance.
type Mapper struct {
	mode    Mode
	palette Palette
	custom  bool
	table   *lut
	dither  *ditherState
}

// NewMapper returns a Mapper on the factory-calibrated palette in ModeLab.
func NewMapper() *Mapper {
	return &Mapper{
		mode:    ModeLab,
		palette: DefaultPalette(),
	}
}

// SetMode selects the matching strategy for MapColor.
func (m *Mapper) SetMode(mode Mode) { m.mode = mode }

// Mode reports the current matching strategy.
func (m *Mapper) Mode() Mode { return m.mode }

// Palette returns the active palette. The returned pointer stays valid
// until the next calibration call; treat it as read-only.
func (m *Mapper) Palette() *Palette { return &m.palette }

// UseDefaultPalette restores the factory-calibrated palette. Any custom
// lookup table is released; the shared default table is picked up again on
// the next fast mapping call without a rebuild.
func (m *Mapper) UseDefaultPalette() {
	m.palette = DefaultPalette()
	m.custom = false
	m.table = nil
}

// UseIdealizedPalette switches to pure RGB primaries. Not recommended for
// panel output.
func (m *Mapper) UseIdealizedPalette() {
	m.palette = IdealizedPalette()
	m.custom = true
	m.table = nil
}

// SetCalibratedColor overrides a single palette entry with a measured
// value. Out-of-range indices are silently ignored. Any existing lookup
// table no longer matches the palette and is released.
func (m *Mapper) SetCalibratedColor(index int, r, g, b uint8) {
	if index < 0 || index >= NumInks {
		return
	}
	m.palette.SetColor(index, r, g, b)
	m.custom = true
	m.table = nil
}

// MapColor maps an RGB triple to the nearest panel code under the current
// mode. If a lookup table is already available it is used regardless of
// mode; the result matches the Lab path within one quantization bucket.
func (m *Mapper) MapColor(r, g, b uint8) uint8 {
	if m.table != nil {
		return m.table.lookup(r, g, b)
	}
	if m.mode == ModeNearestRGB {
		return m.palette.nearestRGB(r, g, b)
	}
	return m.palette.nearestLab(r, g, b)
}

// MapColorFast maps through the lookup table, building it on first use for
// a custom palette. The factory palette shares one process-wide table. If
// no table can be obtained the call degrades to the Lab path.
func (m *Mapper) MapColorFast(r, g, b uint8) uint8 {
	if m.table == nil {
		if m.custom {
			m.table = buildLUT(&m.palette)
		} else {
			m.table = sharedDefaultLUT()
		}
	}
	if m.table == nil {
		return m.palette.nearestLab(r, g, b)
	}
	return m.table.lookup(r, g, b)
}

// MapColorDithered maps one pixel of a row-major stream with Floyd-Steinberg
// error diffusion. Pixels must be fed left to right; rows must advance by
// exactly one. Any other row transition, and any change of imageWidth
// mid-stream, resets the dither state and answers that pixel with plain Lab
// matching. Columns beyond the declared image width or the supported
// maximum are mapped without diffusion.
func (m *Mapper) MapColorDithered(x, y int, r, g, b uint8, imageWidth int) uint8 {
	if m.dither == nil {
		m.dither = newDitherState()
	}
	d := m.dither

	if imageWidth != d.width {
		if d.width != 0 {
			// Error accumulated for a different-width stream is stale.
			d.reset()
			d.currentRow = y
			d.width = imageWidth
			return m.palette.nearestLab(r, g, b)
		}
		d.width = imageWidth
	}

	if y != d.currentRow {
		if y == d.currentRow+1 {
			d.advanceRow()
			d.currentRow = y
		} else {
			d.reset()
			d.currentRow = y
			d.width = imageWidth
			return m.palette.nearestLab(r, g, b)
		}
	}

	if x < 0 || x >= MaxDitherWidth || x >= imageWidth {
		return m.palette.nearestLab(r, g, b)
	}

	adjR := clampByte(int16(r) + d.errR[0][x])
	adjG := clampByte(int16(g) + d.errG[0][x])
	adjB := clampByte(int16(b) + d.errB[0][x])

	code := m.palette.nearestLab(adjR, adjG, adjB)

	palR, palG, palB := m.palette.RGB(code)
	errR := int16(adjR) - int16(palR)
	errG := int16(adjG) - int16(palG)
	errB := int16(adjB) - int16(palB)

	d.distribute(x, imageWidth, errR, errG, errB)
	return code
}

// ResetDither clears accumulated diffusion error. Call before each new
// image.
func (m *Mapper) ResetDither() {
	if m.dither != nil {
		m.dither.reset()
	}
}
