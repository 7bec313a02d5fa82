package spectra

import (
	"math"
	"sync"
)

// CIE constants for the XYZ to Lab transfer function.
const (
	labEpsilon = 0.008856
	labKappa   = 903.3
)

// D65 reference white point.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

var (
	gammaOnce  sync.Once
	gammaTable [256]float64
)

// linearize returns the linear-light value for an 8-bit sRGB component,
// using a table built once on first use.
func linearize(v uint8) float64 {
	gammaOnce.Do(func() {
		for i := range gammaTable {
			f := float64(i) / 255.0
			if f > 0.04045 {
				gammaTable[i] = math.Pow((f+0.055)/1.055, 2.4)
			} else {
				gammaTable[i] = f / 12.92
			}
		}
	})
	return gammaTable[v]
}

// rgbToLab converts an 8-bit sRGB triple to CIE Lab under the D65 white
// point: sRGB gamma expansion, the standard sRGB-to-XYZ matrix, then the
// piecewise XYZ-to-Lab transfer function.
func rgbToLab(r, g, b uint8) (l, a, labB float64) {
	rf := linearize(r)
	gf := linearize(g)
	bf := linearize(b)

	x := rf*0.4124564 + gf*0.3575761 + bf*0.1804375
	y := rf*0.2126729 + gf*0.7151522 + bf*0.0721750
	z := rf*0.0193339 + gf*0.1191920 + bf*0.9503041

	x /= whiteX
	y /= whiteY
	z /= whiteZ

	fx := labF(x)
	fy := labF(y)
	fz := labF(z)

	l = 116.0*fy - 16.0
	a = 500.0 * (fx - fy)
	labB = 200.0 * (fy - fz)
	return l, a, labB
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16.0) / 116.0
}
