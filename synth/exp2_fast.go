//go:build fastmath

package synth

import "github.com/meko-christian/algo-approx"

// ln2 is the natural logarithm of 2.
const ln2 = 0.693147180559945309417232121458

// exp2 converts a bend in octaves to a frequency ratio using the fast
// exponential approximation: 2^x = e^(x * ln(2)).
func exp2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
