package spectra

// MaxDitherWidth is the widest image the dither state supports. Wider
// images still map correctly but without error diffusion beyond this column.
const MaxDitherWidth = 1800

// ditherState holds the Floyd-Steinberg error accumulators for the current
// and next row, one int16 buffer per channel. Allocated lazily on the first
// dithered call and reused for every subsequent image.
type ditherState struct {
	errR, errG, errB [2][]int16
	currentRow       int
	width            int
}

func newDitherState() *ditherState {
	d := &ditherState{}
	for i := 0; i < 2; i++ {
		d.errR[i] = make([]int16, MaxDitherWidth)
		d.errG[i] = make([]int16, MaxDitherWidth)
		d.errB[i] = make([]int16, MaxDitherWidth)
	}
	return d
}

// reset clears all accumulated error and rewinds the row cursor, ready for
// a new image.
func (d *ditherState) reset() {
	d.currentRow = 0
	d.width = 0
	for i := 0; i < 2; i++ {
		clearInt16(d.errR[i])
		clearInt16(d.errG[i])
		clearInt16(d.errB[i])
	}
}

// advanceRow rolls the next-row error buffers into the current row and
// clears the next row.
func (d *ditherState) advanceRow() {
	copy(d.errR[0], d.errR[1])
	copy(d.errG[0], d.errG[1])
	copy(d.errB[0], d.errB[1])
	clearInt16(d.errR[1])
	clearInt16(d.errG[1])
	clearInt16(d.errB[1])
}

// distribute spreads the quantization error at column x to the unprocessed
// neighbours using the Floyd-Steinberg kernel:
//
//	      *   7/16
//	3/16 5/16 1/16
//
// Neighbour writes are bounds-checked against both the image width and the
// buffer capacity.
func (d *ditherState) distribute(x, imageWidth int, errR, errG, errB int16) {
	if x+1 < imageWidth && x+1 < MaxDitherWidth {
		d.errR[0][x+1] += (errR * 7) / 16
		d.errG[0][x+1] += (errG * 7) / 16
		d.errB[0][x+1] += (errB * 7) / 16
	}
	if x > 0 {
		d.errR[1][x-1] += (errR * 3) / 16
		d.errG[1][x-1] += (errG * 3) / 16
		d.errB[1][x-1] += (errB * 3) / 16
	}
	d.errR[1][x] += (errR * 5) / 16
	d.errG[1][x] += (errG * 5) / 16
	d.errB[1][x] += (errB * 5) / 16
	if x+1 < imageWidth && x+1 < MaxDitherWidth {
		d.errR[1][x+1] += (errR * 1) / 16
		d.errG[1][x+1] += (errG * 1) / 16
		d.errB[1][x+1] += (errB * 1) / 16
	}
}

func clearInt16(s []int16) {
	for i := range s {
		s[i] = 0
	}
}

func clampByte(v int16) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
