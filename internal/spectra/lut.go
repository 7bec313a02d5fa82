package spectra

import "sync"

// LUT quantization: 5 bits per channel, 32^3 buckets, one panel code per
// bucket. 32 KiB buys an O(1) lookup that matches the Lab path within one
// quantization bucket.
const (
	lutBits  = 5
	lutSize  = 1 << lutBits
	lutShift = 8 - lutBits
)

// lut is a dense cube over quantized RGB space holding precomputed nearest
// panel codes under Lab distance.
type lut struct {
	codes [lutSize * lutSize * lutSize]uint8
}

// lookup returns the precomputed code for an 8-bit RGB triple.
func (t *lut) lookup(r, g, b uint8) uint8 {
	ri := int(r >> lutShift)
	gi := int(g >> lutShift)
	bi := int(b >> lutShift)
	return t.codes[(ri<<(2*lutBits))|(gi<<lutBits)|bi]
}

// buildLUT precomputes the nearest Lab match for the representative colour
// of every bucket. Bucket representatives replicate the high bits into the
// low bits so 0 maps to 0 and 31 maps to 255.
func buildLUT(p *Palette) *lut {
	t := &lut{}
	for ri := 0; ri < lutSize; ri++ {
		r := replicate(uint8(ri))
		for gi := 0; gi < lutSize; gi++ {
			g := replicate(uint8(gi))
			base := (ri << (2 * lutBits)) | (gi << lutBits)
			for bi := 0; bi < lutSize; bi++ {
				t.codes[base|bi] = p.nearestLab(r, g, replicate(uint8(bi)))
			}
		}
	}
	return t
}

// replicate expands a 5-bit quantized value to a representative 8-bit value.
func replicate(q uint8) uint8 {
	return q<<lutShift | q>>(lutBits-lutShift)
}

var (
	defaultLUTOnce sync.Once
	defaultLUT     *lut
)

// sharedDefaultLUT returns the process-wide table for the factory palette.
// It is built at most once; every Mapper on the default palette shares it,
// so switching a Mapper back to the default never triggers a rebuild.
func sharedDefaultLUT() *lut {
	defaultLUTOnce.Do(func() {
		p := DefaultPalette()
		defaultLUT = buildLUT(&p)
	})
	return defaultLUT
}
