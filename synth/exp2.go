//go:build !fastmath

package synth

import "math"

// exp2 converts a bend in octaves to a frequency ratio.
func exp2(x float64) float64 {
	return math.Exp2(x)
}
