// Package dither converts rendered float samples to integer PCM for export,
// adding optional dither noise before rounding.
package dither

import "fmt"

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF), the most common choice.
	DitherTriangular
	// DitherGaussian uses a Gaussian PDF.
	DitherGaussian

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{
	"none", "rectangular", "triangular", "gaussian",
}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType maps a dither type name to its DitherType.
func ParseDitherType(name string) (DitherType, error) {
	for i, n := range ditherTypeNames {
		if n == name {
			return DitherType(i), nil
		}
	}
	return 0, fmt.Errorf("dither: unknown dither type: %q", name)
}
